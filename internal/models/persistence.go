package models

// StorageV2 is the current persistence envelope with an explicit version
// field. V1 files (user records only, no version and no codes) unmarshal
// into this struct with Version zero-valued, enabling seamless migration.
type StorageV2 struct {
	Version int                    `json:"version"`
	Users   map[string]*UserRecord `json:"users"`
	Codes   map[string]*PackCode   `json:"codes"`
}

const StorageVersion = 2
