package constants

// 优惠券类型常量
const (
	VoucherTypePercentage = "percentage"
	VoucherTypeFixed      = "fixed"
)

// 优惠券分类常量
const (
	VoucherCategoryGeneral   = "general"
	VoucherCategoryFirstTime = "first-time"
	VoucherCategoryPremium   = "premium"
	VoucherCategoryLoyalty   = "loyalty"
	VoucherCategorySpecial   = "special"
)

// 优惠券字段长度上限
const (
	VoucherCodeMaxLength        = 20
	VoucherTitleMaxLength       = 50
	VoucherDescriptionMaxLength = 200
)

// 服务项目分类常量
const (
	ServiceCategoryHair     = "Hair"
	ServiceCategorySkincare = "Skincare"
	ServiceCategoryNails    = "Nails"
	ServiceCategoryBeauty   = "Beauty"
	ServiceCategoryWellness = "Wellness"
)

// 异步队列常量
const (
	QueueDefault        = "default"
	QueueCritical       = "critical"
	TaskVoucherRedeemed = "voucher:redeemed"
)

// 数据库驱动常量
const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)
