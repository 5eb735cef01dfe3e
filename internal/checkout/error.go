package checkout

import "errors"

var (
	// -- Transition guards --
	ErrNotBrowsing    = errors.New("not browsing the menu")
	ErrNotCustomizing = errors.New("no item is being customized")
	ErrNotReviewing   = errors.New("no order review in progress")
	ErrOrderInFlight  = errors.New("order submission in progress")
	ErrOrderComplete  = errors.New("order already completed")
	ErrOrderNotDone   = errors.New("order is not complete")

	// -- Validation & Input --
	ErrAddressRequired = errors.New("delivery address is required")
	ErrBadOrderType    = errors.New("unknown order type")
	ErrBadDeliveryTier = errors.New("unknown delivery option")

	// -- Submission --
	ErrSubmissionFailed = errors.New("order submission failed")
)
