package repository

// Checklist field keys a job type may require on closure. The closure
// report carries a boolean per key; a job type's required set is a subset
// of these.
const (
	FieldUnitIdentification   = "unit-identification"
	FieldPhotoEvidence        = "photo-evidence"
	FieldLocationConfirmation = "location-confirmation"
	FieldConsumablesLogged    = "consumables-logged"
	FieldLaborHoursLogged     = "labor-hours-logged"
	FieldSubcontractorInfo    = "subcontractor-info"
	FieldStockMaterialsLogged = "stock-materials-logged"
)

var knownFields = map[string]struct{}{
	FieldUnitIdentification:   {},
	FieldPhotoEvidence:        {},
	FieldLocationConfirmation: {},
	FieldConsumablesLogged:    {},
	FieldLaborHoursLogged:     {},
	FieldSubcontractorInfo:    {},
	FieldStockMaterialsLogged: {},
}

// IsKnownField reports whether key is a recognized checklist field.
func IsKnownField(key string) bool {
	_, ok := knownFields[key]
	return ok
}

// KnownFields returns all recognized checklist field keys.
func KnownFields() []string {
	return []string{
		FieldUnitIdentification,
		FieldPhotoEvidence,
		FieldLocationConfirmation,
		FieldConsumablesLogged,
		FieldLaborHoursLogged,
		FieldSubcontractorInfo,
		FieldStockMaterialsLogged,
	}
}
