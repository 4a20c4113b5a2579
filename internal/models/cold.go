package models

// ColdStorageInterface moves inactive users' records between the hot store
// and disk. Implemented by storage.ColdStorage.
type ColdStorageInterface interface {
	Has(userId string) bool
	Evict(userId string, rec *UserRecord)
	Restore(userId string) (*UserRecord, bool)
}
