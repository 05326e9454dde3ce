package excel

import (
	"time"

	"github.com/youssef7511/AVCNA/internal/model"
)

// One codec per entity. Column order mirrors the table layout the
// desktop templates always used: recordid first, itemname next, audit
// dates last.

func DciCodec() *Codec[model.Dci] {
	return NewCodec(
		Int("recordid", func(d *model.Dci) *int { return &d.RecordID }),
		String("itemname", func(d *model.Dci) *string { return &d.ItemName }),
		String("subvalue", func(d *model.Dci) *string { return &d.SubValue }),
		String("iteminfo", func(d *model.Dci) *string { return &d.ItemInfo }),
		Time("addedat", func(d *model.Dci) **time.Time { return &d.AddedAt }),
		Time("updatedat", func(d *model.Dci) **time.Time { return &d.UpdatedAt }),
	)
}

func FamilyCodec() *Codec[model.Family] {
	return NewCodec(
		Int("recordid", func(f *model.Family) *int { return &f.RecordID }),
		String("itemname", func(f *model.Family) *string { return &f.ItemName }),
		String("subvalue", func(f *model.Family) *string { return &f.SubValue }),
		Time("addedat", func(f *model.Family) **time.Time { return &f.AddedAt }),
		Time("updatedat", func(f *model.Family) **time.Time { return &f.UpdatedAt }),
	)
}

func LaboCodec() *Codec[model.Labo] {
	return NewCodec(
		Int("recordid", func(l *model.Labo) *int { return &l.RecordID }),
		String("itemname", func(l *model.Labo) *string { return &l.ItemName }),
		String("subvalue", func(l *model.Labo) *string { return &l.SubValue }),
		Time("addedat", func(l *model.Labo) **time.Time { return &l.AddedAt }),
		Time("updatedat", func(l *model.Labo) **time.Time { return &l.UpdatedAt }),
	)
}

func FormeCodec() *Codec[model.Forme] {
	return NewCodec(
		Int("recordid", func(f *model.Forme) *int { return &f.RecordID }),
		String("itemname", func(f *model.Forme) *string { return &f.ItemName }),
		String("subvalue", func(f *model.Forme) *string { return &f.SubValue }),
		String("formgroup", func(f *model.Forme) *string { return &f.FormGroup }),
		String("abname", func(f *model.Forme) *string { return &f.AbName }),
		Time("addedat", func(f *model.Forme) **time.Time { return &f.AddedAt }),
		Time("updatedat", func(f *model.Forme) **time.Time { return &f.UpdatedAt }),
	)
}

func VoieCodec() *Codec[model.Voie] {
	return NewCodec(
		Int("recordid", func(v *model.Voie) *int { return &v.RecordID }),
		String("itemname", func(v *model.Voie) *string { return &v.ItemName }),
		String("abname", func(v *model.Voie) *string { return &v.AbName }),
		String("subvalue", func(v *model.Voie) *string { return &v.SubValue }),
		Time("addedat", func(v *model.Voie) **time.Time { return &v.AddedAt }),
		Time("updatedat", func(v *model.Voie) **time.Time { return &v.UpdatedAt }),
	)
}

// MedicationCodec is used for full-table exports; medications are not
// part of the strict import pipeline.
func MedicationCodec() *Codec[model.Medication] {
	return NewCodec(
		Int("recordid", func(m *model.Medication) *int { return &m.RecordID }),
		Int("medicno", func(m *model.Medication) *int { return &m.MedicNo }),
		String("medicid", func(m *model.Medication) *string { return &m.MedicID }),
		String("barcode", func(m *model.Medication) *string { return &m.Barcode }),
		String("amm", func(m *model.Medication) *string { return &m.AMM }),
		String("itemname", func(m *model.Medication) *string { return &m.ItemName }),
		String("shortname", func(m *model.Medication) *string { return &m.ShortName }),
		String("forme", func(m *model.Medication) *string { return &m.Forme }),
		String("voie", func(m *model.Medication) *string { return &m.Voie }),
		String("present", func(m *model.Medication) *string { return &m.Present }),
		String("posology", func(m *model.Medication) *string { return &m.Posology }),
		String("dci1", func(m *model.Medication) *string { return &m.Dci1 }),
		String("dci2", func(m *model.Medication) *string { return &m.Dci2 }),
		String("dci3", func(m *model.Medication) *string { return &m.Dci3 }),
		String("dci4", func(m *model.Medication) *string { return &m.Dci4 }),
		String("dci", func(m *model.Medication) *string { return &m.Dci }),
		String("fam1", func(m *model.Medication) *string { return &m.Fam1 }),
		String("fam2", func(m *model.Medication) *string { return &m.Fam2 }),
		String("fam3", func(m *model.Medication) *string { return &m.Fam3 }),
		String("family", func(m *model.Medication) *string { return &m.Family }),
		String("labo", func(m *model.Medication) *string { return &m.Labo }),
		String("dose1", func(m *model.Medication) *string { return &m.Dose1 }),
		String("dose2", func(m *model.Medication) *string { return &m.Dose2 }),
		String("u1", func(m *model.Medication) *string { return &m.U1 }),
		String("u2", func(m *model.Medication) *string { return &m.U2 }),
		Int("price", func(m *model.Medication) *int { return &m.Price }),
		Int("refprice", func(m *model.Medication) *int { return &m.RefPrice }),
		Int("netprice", func(m *model.Medication) *int { return &m.NetPrice }),
		String("tableau", func(m *model.Medication) *string { return &m.Tableau }),
		String("indication", func(m *model.Medication) *string { return &m.Indication }),
		Int("pediatric", func(m *model.Medication) *int { return &m.Pediatric }),
		Int("isactive", func(m *model.Medication) *int { return &m.IsActive }),
		Time("addedat", func(m *model.Medication) **time.Time { return &m.AddedAt }),
		Time("updatedat", func(m *model.Medication) **time.Time { return &m.UpdatedAt }),
	)
}
