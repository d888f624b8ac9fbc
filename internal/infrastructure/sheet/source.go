package sheet

import "context"

// Row is one parsed directory row. Phone is raw as entered in the
// sheet; normalization happens in the domain layer.
type Row struct {
	RowID         string `json:"row_id,omitempty"`
	Phone         string `json:"phone"`
	BusinessName  string `json:"business_name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	GSTNumber     string `json:"gst_number,omitempty"`
	Street        string `json:"street,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
}

// TierSheet is the full membership listing for one priority tier. The
// sheet owns the membership: retailers absent from it lose the tier on
// sync.
type TierSheet struct {
	PriorityCode string
	Rows         []Row
	RowErrors    []RowError
}

// Source fetches the current tier sheets from the external directory.
// Implementations wrap transport failures so the caller can tell an
// unreachable source apart from bad data.
type Source interface {
	// Fetch returns the sheets for the given priority codes. A failure
	// to reach one sheet fails only that sheet, not the whole batch.
	Fetch(ctx context.Context, priorityCodes []string) ([]TierSheet, []SourceError, error)
}

// SourceError records a tier whose sheet could not be fetched at all
type SourceError struct {
	PriorityCode string `json:"priority_code"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}
