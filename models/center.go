package models

import "gorm.io/gorm"

// MaterialChoices is the accepted-material vocabulary, shared by the
// centers directory filters and AcceptedMaterial rows.
var MaterialChoices = []string{
	"paper",
	"plastic",
	"glass",
	"metal",
	"electronics",
	"batteries",
	"textiles",
	"organic",
	"hazardous",
}

func ValidMaterial(m string) bool {
	for _, v := range MaterialChoices {
		if v == m {
			return true
		}
	}
	return false
}

// RecyclingCenter is a read-mostly directory entry. State is stored as a
// two-letter province/state code ("ON", "BC", ...).
type RecyclingCenter struct {
	gorm.Model
	Name        string  `json:"name" gorm:"type:VARCHAR(200);not null"`
	Slug        string  `json:"slug" gorm:"type:VARCHAR(200);uniqueIndex;not null"`
	Description string  `json:"description" gorm:"type:TEXT"`
	Address     string  `json:"address" gorm:"type:VARCHAR(300)"`
	City        string  `json:"city" gorm:"type:VARCHAR(100);index"`
	State       string  `json:"state" gorm:"type:VARCHAR(10);index"`
	Zipcode     string  `json:"zipcode" gorm:"type:VARCHAR(20);index"`
	Country     string  `json:"country" gorm:"type:VARCHAR(100);default:Canada"`
	Phone       string  `json:"phone" gorm:"type:VARCHAR(20)"`
	Email       string  `json:"email" gorm:"type:VARCHAR(254)"`
	Website     string  `json:"website" gorm:"type:VARCHAR(255)"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	MondayHours    string `json:"monday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	TuesdayHours   string `json:"tuesday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	WednesdayHours string `json:"wednesday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	ThursdayHours  string `json:"thursday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	FridayHours    string `json:"friday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	SaturdayHours  string `json:"saturday_hours" gorm:"type:VARCHAR(50);default:Closed"`
	SundayHours    string `json:"sunday_hours" gorm:"type:VARCHAR(50);default:Closed"`

	AcceptsDropoff   bool `json:"accepts_dropoff" gorm:"default:true"`
	OffersPickup     bool `json:"offers_pickup" gorm:"default:false"`
	AcceptsDonations bool `json:"accepts_donations" gorm:"default:false"`
	IsVerified       bool `json:"is_verified" gorm:"default:false"`

	Materials []AcceptedMaterial `json:"materials" gorm:"foreignKey:CenterID;constraint:OnDelete:CASCADE"`
}

func (rc *RecyclingCenter) FullAddress() string {
	return rc.Address + ", " + rc.City + ", " + rc.State + " " + rc.Zipcode
}

// OperatingHours returns the weekday/hours pairs in week order.
func (rc *RecyclingCenter) OperatingHours() [][2]string {
	return [][2]string{
		{"Monday", rc.MondayHours},
		{"Tuesday", rc.TuesdayHours},
		{"Wednesday", rc.WednesdayHours},
		{"Thursday", rc.ThursdayHours},
		{"Friday", rc.FridayHours},
		{"Saturday", rc.SaturdayHours},
		{"Sunday", rc.SundayHours},
	}
}

type AcceptedMaterial struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	CenterID     uint   `json:"-" gorm:"not null;uniqueIndex:idx_center_material"`
	MaterialType string `json:"material_type" gorm:"type:VARCHAR(50);not null;uniqueIndex:idx_center_material"`
	Notes        string `json:"notes" gorm:"type:TEXT"`
}
