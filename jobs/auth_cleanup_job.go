package jobs

import (
	"log"
	"time"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const authCleanupSpec = "*/15 * * * *"

// Schedule registers the recurring jobs on c.
func Schedule(c *cron.Cron) error {
	_, err := c.AddFunc(authCleanupSpec, PurgeExpiredAuthState)
	return err
}

// PurgeExpiredAuthState deletes login challenges and sessions that can no longer
// be used.
func PurgeExpiredAuthState() {
	log.Println("Running job: PurgeExpiredAuthState...")

	challenges, sessions, err := purgeAuthState(database.DB, time.Now())
	if err != nil {
		log.Printf("Error purging expired auth state: %v", err)
		return
	}
	if challenges == 0 && sessions == 0 {
		log.Println("No expired auth state found.")
		return
	}
	log.Printf("Purged %d login challenge(s) and %d session(s).", challenges, sessions)
}

func purgeAuthState(db *gorm.DB, now time.Time) (int64, int64, error) {
	var challenges, sessions int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("consumed_at IS NOT NULL OR expires_at < ?", now).Delete(&models.OTPChallenge{})
		if res.Error != nil {
			return res.Error
		}
		challenges = res.RowsAffected

		res = tx.Where("revoked_at IS NOT NULL OR expires_at < ?", now).Delete(&models.Session{})
		if res.Error != nil {
			return res.Error
		}
		sessions = res.RowsAffected
		return nil
	})
	return challenges, sessions, err
}
