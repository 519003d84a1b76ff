package models

// Categories
const (
	// CategoryOther is assigned when no keyword of any category matches.
	CategoryOther = "Other"
)

// Receipt layout markers
const (
	// SectionHeaderMarker is the literal line content that precedes the
	// itemized product section of a receipt.
	SectionHeaderMarker = "Descripción P. Unit Importe"
	// SectionTerminator marks the end of the itemized section. Nothing
	// after it is scanned.
	SectionTerminator = "TOTAL"
)

// Date and time layouts used on receipts
const (
	TicketDateLayout = "02/01/2006"
	TicketTimeLayout = "15:04"
)

// File permissions
const (
	PermissionStoreFile  = 0600
	PermissionReportFile = 0644
	PermissionDirectory  = 0750
)
