package i18n

import "context"

// LocaleCookieName is the cookie the web frontend uses to persist the
// selected locale.
const LocaleCookieName = "NEXT_LOCALE"

// DefaultLocale is used when no cookie or header selects a locale.
const DefaultLocale = "en"

type contextKey struct{}

// WithLocale stores the resolved locale in the request context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKey{}, locale)
}

// FromContext returns the locale stored in the context, falling back to
// the default locale.
func FromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(contextKey{}).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// Supported reports whether the locale has a message catalog.
func Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// Lookup resolves a message key for the given locale. Unknown locales
// fall back to English; unknown keys return the key itself so missing
// translations are visible rather than silent.
func Lookup(locale, key string) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[DefaultLocale]
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if locale != DefaultLocale {
		if msg, ok := catalogs[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

var catalogs = map[string]map[string]string{
	"en": {
		"error.not_found":               "The requested resource was not found",
		"error.conflict":                "The request conflicts with existing data",
		"error.invalid_credentials":     "Invalid email or password",
		"error.unauthorized":            "Unauthorized",
		"error.insufficient_stock":      "Insufficient stock for this operation",
		"error.insufficient_leave":      "Insufficient leave balance",
		"error.leave_balance_not_found": "No leave balance exists for that year",
		"error.same_warehouse":          "Source and destination warehouse must differ",
		"error.invalid_movement_type":   "Invalid stock movement type",
		"error.zero_quantity":           "Quantity must not be zero",
		"error.invalid_status":          "Invalid status",
		"error.invalid_input":           "Invalid input",
		"error.legacy_disabled":         "Legacy accounting integration is not configured",
		"error.number_exhausted":        "Could not allocate a document number",
		"error.internal":                "An unexpected error occurred",
		"status.draft":                  "Draft",
		"status.sent":                   "Sent",
		"status.paid":                   "Paid",
		"status.overdue":                "Overdue",
		"status.cancelled":              "Cancelled",
		"status.accepted":               "Accepted",
		"status.rejected":               "Rejected",
		"status.expired":                "Expired",
		"movement.receive":              "Receive",
		"movement.adjustment":           "Adjustment",
		"movement.sale":                 "Sale",
		"movement.transfer":             "Transfer",
		"movement.opening_stock":        "Opening stock",
	},
	"th": {
		"error.not_found":               "ไม่พบข้อมูลที่ร้องขอ",
		"error.conflict":                "ข้อมูลขัดแย้งกับข้อมูลที่มีอยู่",
		"error.invalid_credentials":     "อีเมลหรือรหัสผ่านไม่ถูกต้อง",
		"error.unauthorized":            "ไม่ได้รับอนุญาต",
		"error.insufficient_stock":      "สินค้าในคลังไม่เพียงพอ",
		"error.insufficient_leave":      "วันลาคงเหลือไม่เพียงพอ",
		"error.leave_balance_not_found": "ไม่พบวันลาคงเหลือสำหรับปีนั้น",
		"error.same_warehouse":          "คลังต้นทางและปลายทางต้องต่างกัน",
		"error.invalid_movement_type":   "ประเภทการเคลื่อนไหวสต็อกไม่ถูกต้อง",
		"error.zero_quantity":           "จำนวนต้องไม่เป็นศูนย์",
		"error.invalid_status":          "สถานะไม่ถูกต้อง",
		"error.invalid_input":           "ข้อมูลไม่ถูกต้อง",
		"error.legacy_disabled":         "ยังไม่ได้ตั้งค่าการเชื่อมต่อระบบบัญชีเดิม",
		"error.number_exhausted":        "ไม่สามารถออกเลขที่เอกสารได้",
		"error.internal":                "เกิดข้อผิดพลาดที่ไม่คาดคิด",
		"status.draft":                  "ฉบับร่าง",
		"status.sent":                   "ส่งแล้ว",
		"status.paid":                   "ชำระแล้ว",
		"status.overdue":                "เกินกำหนด",
		"status.cancelled":              "ยกเลิก",
		"status.accepted":               "ตอบรับแล้ว",
		"status.rejected":               "ปฏิเสธ",
		"status.expired":                "หมดอายุ",
		"movement.receive":              "รับเข้า",
		"movement.adjustment":           "ปรับปรุง",
		"movement.sale":                 "ขาย",
		"movement.transfer":             "โอนย้าย",
		"movement.opening_stock":        "ยอดยกมา",
	},
}
