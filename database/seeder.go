package database

import (
	"ecoshare/models"
	"ecoshare/utils"

	"gorm.io/gorm"
)

// SeedCategories fills the item category vocabulary when the table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	names := []string{
		"Furniture",
		"Electronics",
		"Clothing",
		"Books",
		"Kitchen",
		"Toys & Games",
		"Garden",
		"Sports",
		"Other",
	}
	categories := make([]models.Category, 0, len(names))
	for _, n := range names {
		categories = append(categories, models.Category{Name: n, Slug: utils.Slugify(n)})
	}
	return db.Create(&categories).Error
}

// SeedTipCategories fills the tip category vocabulary when the table is empty.
func SeedTipCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TipCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := []struct {
		Name string
		Icon string
	}{
		{"Reduce", "leaf"},
		{"Reuse", "refresh"},
		{"Recycle", "recycle"},
		{"Composting", "sprout"},
		{"E-Waste", "cpu"},
		{"Upcycling", "hammer"},
	}
	categories := make([]models.TipCategory, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, models.TipCategory{
			Name: s.Name,
			Slug: utils.Slugify(s.Name),
			Icon: s.Icon,
		})
	}
	return db.Create(&categories).Error
}

// SeedCenters gives a fresh install a starter directory. The directory is
// read-mostly: later entries arrive through the admin create endpoint.
func SeedCenters(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.RecyclingCenter{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	centers := []models.RecyclingCenter{
		{
			Name:        "GreenLoop Depot",
			Description: "Full-service recycling depot with curbside drop-off bins.",
			Address:     "480 Industrial Ave",
			City:        "Toronto",
			State:       "ON",
			Zipcode:     "M4M 1C4",
			MondayHours: "8:00-18:00", TuesdayHours: "8:00-18:00", WednesdayHours: "8:00-18:00",
			ThursdayHours: "8:00-18:00", FridayHours: "8:00-18:00", SaturdayHours: "9:00-15:00",
			AcceptsDropoff: true,
			IsVerified:     true,
			Materials: []models.AcceptedMaterial{
				{MaterialType: "paper"},
				{MaterialType: "plastic"},
				{MaterialType: "glass"},
				{MaterialType: "metal"},
			},
		},
		{
			Name:        "ReNew Electronics Recovery",
			Description: "Certified e-waste and battery recovery facility.",
			Address:     "77 Circuit Rd",
			City:        "Vancouver",
			State:       "BC",
			Zipcode:     "V5K 0A1",
			MondayHours: "9:00-17:00", TuesdayHours: "9:00-17:00", WednesdayHours: "9:00-17:00",
			ThursdayHours: "9:00-17:00", FridayHours: "9:00-17:00",
			AcceptsDropoff: true,
			OffersPickup:   true,
			IsVerified:     true,
			Materials: []models.AcceptedMaterial{
				{MaterialType: "electronics"},
				{MaterialType: "batteries", Notes: "Lithium batteries must be taped"},
			},
		},
		{
			Name:        "Prairie Textile Exchange",
			Description: "Textile and clothing donation and recycling point.",
			Address:     "12 Mill St",
			City:        "Winnipeg",
			State:       "MB",
			Zipcode:     "R2C 3T5",
			SaturdayHours: "10:00-16:00", SundayHours: "10:00-14:00",
			AcceptsDropoff:   true,
			AcceptsDonations: true,
			Materials: []models.AcceptedMaterial{
				{MaterialType: "textiles"},
			},
		},
	}
	for i := range centers {
		slug, err := utils.UniqueSlug(db, &models.RecyclingCenter{}, utils.Slugify(centers[i].Name), 0)
		if err != nil {
			return err
		}
		centers[i].Slug = slug
		if err := db.Create(&centers[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
