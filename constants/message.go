package constants

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_INPUT              = "Invalid request data"
	DATA_INPUT_IS_NOT_NUMBER = "Id must be a positive number"
	MISSING_LOGIN_INPUT      = "Username and password are required"
	INVALID_CREDENTIALS      = "Invalid username or password"
	ACCOUNT_NOT_ACTIVE       = "Account is disabled"
	MISSING_TOKEN            = "Missing token"
	INVALID_TOKEN            = "Invalid token"
	FORBIDDEN                = "Insufficient permissions"
)

const (
	COUPON_INVALID_CODE    = "Invalid coupon code"
	COUPON_NOT_FOUND       = "Coupon not found"
	COUPON_INACTIVE        = "Coupon is inactive"
	COUPON_EXPIRED         = "Coupon has expired"
	COUPON_EXHAUSTED       = "Coupon usage limit reached"
	COUPON_APPLIED         = "Coupon applied successfully"
	COUPON_USED            = "Coupon usage recorded"
	COUPON_DELETED         = "Coupon deleted"
	COUPON_CODE_EXISTS     = "Coupon code already exists"
	COUPON_MISSING_FIELDS  = "Coupon code and order total are required"
	COUPON_MISSING_CODE    = "Coupon code is required"
	COUPON_BAD_TYPE        = "Discount type must be percentage or fixed"
	COUPON_BAD_PERCENTAGE  = "Percentage discount must be between 0 and 100"
	COUPON_NEGATIVE_VALUE  = "Discount value must not be negative"
	COUPON_NEGATIVE_MIN    = "Minimum order value must not be negative"
	COUPON_NEGATIVE_MAX    = "Maximum discount must not be negative"
	COUPON_BAD_USAGE_LIMIT = "Usage limit must be a positive number"
	COUPON_MISSING_EXPIRY  = "Expiry date is required"
)

const (
	PAYMENT_MISSING_AMOUNT   = "Amount is required"
	PAYMENT_BAD_CURRENCY     = "Unsupported currency"
	PAYMENT_MISSING_FIELDS   = "Missing required payment fields"
	PAYMENT_BAD_SIGNATURE    = "Payment signature verification failed"
	PAYMENT_ORDER_FAILED     = "Failed to create payment order"
	PAYMENT_NOT_FOUND        = "Payment not found"
	PAYMENT_FETCH_FAILED     = "Failed to fetch payment details"
	PAYMENT_GATEWAY_DISABLED = "Payment gateway is not configured"
)

const (
	REVIEW_NOT_FOUND   = "Review not found"
	REVIEW_DELETED     = "Review deleted"
	GALLERY_NOT_FOUND  = "Gallery image not found"
	GALLERY_DELETED    = "Gallery image deleted"
	VIDEO_NOT_FOUND    = "Video not found"
	VIDEO_DELETED      = "Video deleted"
	PRODUCT_NOT_FOUND  = "Product not found"
	UPLOAD_FAILED      = "Failed to upload file"
	UPLOAD_DELETE_FAIL = "Failed to delete file"
	UPLOAD_DELETED     = "File deleted"
	FILE_REQUIRED      = "File is required"
	FILE_TOO_LARGE     = "File is too large"
	FILE_BAD_TYPE      = "Unsupported file type"
)
