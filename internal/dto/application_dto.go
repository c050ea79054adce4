package dto

// StatusPatchDTO is the partial-update body used for status-only changes.
// It carries nothing but the nested status so a PATCH cannot clobber other
// fields of the record.
type StatusPatchDTO struct {
	Application struct {
		Status string `json:"status"`
	} `json:"application"`
}
