package constants

const (
	ROLE_ADMIN  = "ADMIN"
	ROLE_EDITOR = "EDITOR"
)

var ROLES = []string{ROLE_ADMIN, ROLE_EDITOR}

// Discount basis of a coupon.
const (
	DISCOUNT_PERCENTAGE = "percentage"
	DISCOUNT_FIXED      = "fixed"
)

const (
	PAYMENT_CREATED   = "created"
	PAYMENT_PAID      = "paid"
	PAYMENT_ABANDONED = "abandoned"
)

const DEFAULT_CURRENCY = "INR"

var SUPPORTED_CURRENCIES = []string{"INR", "USD", "EUR", "GBP", "SGD", "AED"}

// Minimum chargeable amount in major units; currencies not listed use DEFAULT_MIN_AMOUNT.
var MIN_CHARGEABLE_AMOUNT = map[string]float64{
	"INR": 1,
}

const DEFAULT_MIN_AMOUNT = 0.5

// Largest amount in major units accepted for one order; keeps minor units well inside int64.
const MAX_ORDER_AMOUNT = 10_000_000

const (
	ASSET_FOLDER_GALLERY = "storefront/gallery"
	ASSET_FOLDER_VIDEOS  = "storefront/videos"
	ASSET_FOLDER_IMAGES  = "storefront/images"

	MAX_IMAGE_SIZE = 10 << 20
	MAX_VIDEO_SIZE = 100 << 20
)
