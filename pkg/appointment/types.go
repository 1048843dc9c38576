package appointment

// KnownTypes is the catalogue of appointment types offered when booking.
// Records may carry any other label.
var KnownTypes = []string{
	"Check-up/Routine Exam",
	"Cleaning/Hygiene",
	"X-rays/Radiography",
	"Consultation",
	"Fluoride Treatment",
	"Sealants",
	"Filling",
	"Crown",
	"Bridge",
	"Denture",
	"Root Canal",
	"Extraction",
	"Implant Consultation",
	"Implant Placement",
	"Implant Restoration",
	"Teeth Whitening",
	"Veneers",
	"Bonding",
	"Invisalign/Orthodontic Adjustment",
	"Emergency Visit",
	"Follow-up",
	"Pediatric Exam",
	"Dental Examination",
	"Oral Surgery Procedure",
	"Oral Surgery Consultation",
	"Periodontal Maintenance",
	"Periodontal Treatment",
	"Orthodontics",
	"Other",
}
