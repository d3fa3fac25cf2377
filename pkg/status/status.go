package status

const (
	OK                    = "OK"
	CREATED               = "CREATED"
	BAD_REQUEST           = "BAD_REQUEST"
	UNAUTHORIZED          = "UNAUTHORIZED"
	FORBIDDEN             = "FORBIDDEN"
	NOT_FOUND             = "NOT_FOUND"
	CONFLICT              = "CONFLICT"
	UNPROCESSABLE_ENTITY  = "UNPROCESSABLE_ENTITY"
	INTERNAL_SERVER_ERROR = "INTERNAL_SERVER_ERROR"

	ORDER_CANNOT_MODIFY  = "ORDER_CANNOT_MODIFY"
	ORDER_INVALID_STATUS = "ORDER_INVALID_STATUS"

	PROMOTION_INVALID     = "PROMOTION_INVALID"
	PROMOTION_EXPIRED     = "PROMOTION_EXPIRED"
	PROMOTION_USAGE_LIMIT = "PROMOTION_USAGE_LIMIT"

	PAYMENT_FAILED = "PAYMENT_FAILED"
)
