package databases

// Test-only aliases so the external databases_test package can reach the
// unexported payload helpers.
var (
	RecordPayload  = recordPayload
	MetadataRecord = metadataRecord
)
