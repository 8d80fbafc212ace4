package result

import (
	"fmt"
	"time"
)

// Row is one flattened, storage-ready measurement bound for a family
// table. The columns match the fixed 18-column schema shared by all
// family tables.
type Row struct {
	Key             string    `gorm:"column:key;type:varchar(200)"`
	BoardType       string    `gorm:"column:board_type;type:varchar(200)"`
	BootType        string    `gorm:"column:boot_type;type:varchar(200)"`
	Release         string    `gorm:"column:release;type:varchar(200)"`
	Config          string    `gorm:"column:config;type:varchar(200)"`
	LastModified    time.Time `gorm:"column:last_modified"`
	Processor       string    `gorm:"column:processor;type:varchar(200)"`
	Memory          string    `gorm:"column:memory;type:varchar(200)"`
	Disk            string    `gorm:"column:disk;type:varchar(200)"`
	Graphics        string    `gorm:"column:graphics;type:varchar(200)"`
	Network         string    `gorm:"column:network;type:varchar(200)"`
	OS              string    `gorm:"column:os;type:varchar(200)"`
	Kernel          string    `gorm:"column:kernel;type:varchar(200)"`
	AppTitle        string    `gorm:"column:app_title;type:varchar(200)"`
	AppVersion      string    `gorm:"column:app_version;type:varchar(200)"`
	TestDescription string    `gorm:"column:test_description;type:varchar(200)"`
	Unit            string    `gorm:"column:unit;type:varchar(200)"`
	Value           float64   `gorm:"column:value"`
}

// Extraction is the output of flattening one document: the destination
// table and the rows bound for it.
type Extraction struct {
	Table string
	Rows  []Row
}

// Extract flattens one document into rows for its family table.
//
// Entries whose per-system result carries no value are skipped; the
// metric was not collected for that system. A missing system
// descriptor, a descriptor missing sub-fields, or an unparseable
// last_modified fails the whole document.
func Extract(doc *ResultDocument) (*Extraction, error) {
	parts, err := ParseTitle(doc.Title)
	if err != nil {
		return nil, err
	}

	sysKey, err := SystemKey(doc.Title)
	if err != nil {
		return nil, err
	}

	system, ok := doc.Systems[sysKey]
	if !ok {
		return nil, &IncompleteDocumentError{
			Title:  doc.Title,
			Reason: fmt.Sprintf("no system descriptor for key %q", sysKey),
		}
	}

	if err := system.validate(doc.Title); err != nil {
		return nil, err
	}

	lastModified, ok := parseTimestamp(doc.LastModified)
	if !ok {
		return nil, &IncompleteDocumentError{
			Title:  doc.Title,
			Reason: fmt.Sprintf("unrecognized last_modified %q", doc.LastModified),
		}
	}

	rows := make([]Row, 0, len(doc.Results))

	for _, entry := range doc.Results {
		sysResult, ok := entry.Results[sysKey]
		if !ok || sysResult.Value == nil {
			continue
		}

		rows = append(rows, Row{
			Key:             doc.Title,
			BoardType:       parts.Board,
			BootType:        parts.BootType,
			Release:         parts.Release,
			Config:          parts.Config,
			LastModified:    lastModified,
			Processor:       system.Hardware.Processor,
			Memory:          system.Hardware.Memory,
			Disk:            system.Hardware.Disk,
			Graphics:        system.Hardware.Graphics,
			Network:         system.Hardware.Network,
			OS:              system.Software.OS,
			Kernel:          system.Software.Kernel,
			AppTitle:        entry.Title,
			AppVersion:      resolveVersion(parts.Family, &entry),
			TestDescription: entry.Description,
			Unit:            entry.Scale,
			Value:           *sysResult.Value,
		})
	}

	return &Extraction{Table: parts.Family, Rows: rows}, nil
}
