package domain

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentOverpaid PaymentStatus = "overpaid"
)

type SeasonEnrollment struct {
	ParticipantName string
	Fee             Cents
	Paid            Cents
	Status          PaymentStatus
}

type SeasonReportData struct {
	SeasonName  string
	Enrollments []SeasonEnrollment
	TotalFees   Cents
	TotalPaid   Cents
}
