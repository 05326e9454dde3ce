package service

import (
	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
)

// Per-table request application. Each function copies only the fields
// its table actually carries; the rest of the shared request is ignored.

func ApplyDci(d *model.Dci, req dto.LookupRequest) {
	d.ItemName = req.ItemName
	d.SubValue = req.SubValue
	d.ItemInfo = req.ItemInfo
}

func ApplyFamily(f *model.Family, req dto.LookupRequest) {
	f.ItemName = req.ItemName
	f.SubValue = req.SubValue
}

func ApplyLabo(l *model.Labo, req dto.LookupRequest) {
	l.ItemName = req.ItemName
	l.SubValue = req.SubValue
}

func ApplyForme(f *model.Forme, req dto.LookupRequest) {
	f.ItemName = req.ItemName
	f.SubValue = req.SubValue
	f.FormGroup = req.FormGroup
	f.AbName = req.AbName
}

func ApplyVoie(v *model.Voie, req dto.LookupRequest) {
	v.ItemName = req.ItemName
	v.AbName = req.AbName
	v.SubValue = req.SubValue
}
