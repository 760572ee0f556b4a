package models

import "time"

// GlobalConfigID is the fixed primary key of the singleton config row.
const GlobalConfigID int64 = 1

type GlobalConfig struct {
	ID           int64
	CompanyName  string
	TaxID        string
	Address      string
	Announcement string
	UpdatedBy    int64
	UpdatedAt    time.Time
}
