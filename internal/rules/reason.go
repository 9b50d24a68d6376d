package rules

// Reason identifies why a booking request was refused. Every refusal is a
// specific, expected outcome that the frontend shows to the member, never a
// generic failure.
type Reason string

const (
	ReasonNoActiveSubscription Reason = "no_active_subscription"
	ReasonSubscriptionExpired  Reason = "subscription_expired"
	ReasonClassTypeMismatch    Reason = "class_type_mismatch"
	ReasonDailyLimitExceeded   Reason = "daily_limit_exceeded"
	ReasonWeeklyLimitExceeded  Reason = "weekly_limit_exceeded"
	ReasonPackageExhausted     Reason = "package_exhausted"
	ReasonDuplicateBooking     Reason = "duplicate_booking"
	ReasonTimingWindow         Reason = "timing_window_violation"
	ReasonNotFound             Reason = "not_found"
	ReasonForbidden            Reason = "forbidden"
)

// Rejection is a typed business refusal carrying the member-facing message.
// The studio frontend is Greek, so canonical messages are too.
type Rejection struct {
	Reason  Reason
	Message string
}

func (r *Rejection) Error() string {
	return string(r.Reason) + ": " + r.Message
}

var canonicalMessages = map[Reason]string{
	ReasonNoActiveSubscription: "Δεν έχετε ενεργή συνδρομή.",
	ReasonSubscriptionExpired:  "Η συνδρομή σας θα έχει λήξει μέχρι την ημέρα του μαθήματος. Παρακαλώ ανανεώστε πριν κάνετε κράτηση.",
	ReasonClassTypeMismatch:    "Η συνδρομή σας δεν καλύπτει αυτόν τον τύπο μαθήματος.",
	ReasonDailyLimitExceeded:   "Μπορείτε να κάνετε μόνο 1 κράτηση ανά ημέρα.",
	ReasonWeeklyLimitExceeded:  "Έχετε εξαντλήσει τις κρατήσεις της εβδομάδας.",
	ReasonPackageExhausted:     "Έχετε ολοκληρώσει το πακέτο μαθημάτων.",
	ReasonDuplicateBooking:     "Έχετε ήδη κράτηση σε αυτό το μάθημα.",
	ReasonTimingWindow:         "Η προθεσμία για αυτή την ενέργεια έχει παρέλθει.",
	ReasonNotFound:             "Δεν βρέθηκε.",
	ReasonForbidden:            "Δεν επιτρέπεται.",
}

// Reject builds a Rejection with the canonical message for the reason.
func Reject(reason Reason) *Rejection {
	return &Rejection{Reason: reason, Message: canonicalMessages[reason]}
}

// RejectMsg builds a Rejection with a context-specific message.
func RejectMsg(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}
