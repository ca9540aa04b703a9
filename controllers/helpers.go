package controllers

import (
	"fmt"

	"ecoshare/utils"

	"gorm.io/gorm"
)

// createWithSlug assigns a collision-free slug via the count loop and
// inserts the record. The check-then-write is not atomic, so a concurrent
// creator can still win the same slug; the unique index catches that and
// we regenerate and retry instead of failing the request.
func createWithSlug(db *gorm.DB, model interface{}, base string, setSlug func(string)) error {
	for attempt := 0; attempt < 3; attempt++ {
		slug, err := utils.UniqueSlug(db, model, base, 0)
		if err != nil {
			return err
		}
		setSlug(slug)
		err = db.Create(model).Error
		if err == nil {
			return nil
		}
		if !utils.IsUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("could not allocate a unique slug for %q", base)
}
