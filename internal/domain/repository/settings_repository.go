package repository

// SettingsRepository is the dotted-key settings store. It also owns the
// per-company receipt-ID counters, since those live in the settings file.
type SettingsRepository interface {
	// Get returns the value at a dotted key ("receipt.width"), or nil.
	Get(key string) interface{}
	// GetInt returns the integer value at a dotted key, or def when unset.
	GetInt(key string, def int) int
	// GetString returns the string value at a dotted key, or def when unset.
	GetString(key, def string) string
	// Set stores a value at a dotted key and persists the file.
	Set(key string, value interface{}) error

	// PeekReceiptID returns the receipt ID the next print for the company
	// would get ("YYYYMMDD-NNNN") without consuming it. Used by previews.
	PeekReceiptID(company string) string
	// CommitReceiptID consumes and returns the next receipt ID for the
	// company. The counter resets to 0001 on the first print of each day and
	// the increment is serialized across concurrent prints.
	CommitReceiptID(company string) (string, error)
}
