package httperr

var messages = map[string]string{
	"invalid_request":        "Invalid request body.",
	"invalid_id":             "Invalid id.",
	"invalid_time_range":     "Start time must be before end time.",
	"invalid_date":           "Date must be formatted as YYYY-MM-DD.",
	"invalid_selected_time":  "selected_time must be RFC 3339 or YYYY-MM-DD HH:MM.",
	"invalid_month":          "Month must be between 1 and 12.",
	"invalid_year":           "Year must be between 2000 and 2100.",
	"invalid_state":          "Operation not allowed in the current status.",
	"invalid_status":         "Unknown appointment status.",
	"invalid_price":          "Price must be greater than zero.",
	"invalid_salary":         "Salary must not be negative.",
	"invalid_gender":         "Gender must be Male, Female or Unisex.",
	"invalid_email":          "Invalid email address.",
	"invalid_image":          "Unsupported or corrupt image.",
	"weak_password":          "Password must have at least 6 characters.",
	"missing_fields":         "Required fields are missing.",
	"missing_slot":           "Either slot_id or selected_time is required.",
	"invalid_credentials":    "Invalid email or password.",
	"wrong_password":         "Current password is incorrect.",
	"unauthenticated":        "Authentication required.",
	"invalid_token":          "Invalid or expired token.",
	"forbidden":              "You do not have access to this resource.",
	"admin_only":             "Admin access required.",
	"not_found":              "Resource not found.",
	"user_not_found":         "User not found.",
	"service_not_found":      "Service not found.",
	"stylist_not_found":      "Stylist not found.",
	"slot_not_found":         "Slot not found.",
	"image_not_found":        "Image not found.",
	"appointment_not_found":  "Appointment not found.",
	"slot_already_booked":    "Slot is already booked.",
	"slot_overlap":           "Slot overlaps an existing slot for this stylist.",
	"slot_in_use":            "Slot is held by an active appointment.",
	"slot_stylist_mismatch":  "Slot does not belong to the selected stylist.",
	"service_in_use":         "Service is referenced by appointments.",
	"stylist_in_use":         "Stylist still has slots or appointments.",
	"user_in_use":            "User still has appointments.",
	"cannot_delete_admin":    "Admin accounts cannot be deleted.",
	"email_taken":            "Email is already in use.",
	"rate_limited":           "Too many requests, try again later.",
	"storage_not_configured": "Media storage is not configured.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
