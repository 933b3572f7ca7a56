package jobs

import (
	"context"
	"time"

	"rentnest-backend/internal/logger"
)

// SendPendingInquiryDigest emails each owner how many inquiries have been
// waiting on them longer than the configured age.
func (jr *JobRunner) SendPendingInquiryDigest() {
	jr.runWithRecovery("SendPendingInquiryDigest", func(ctx context.Context) error {
		age := time.Duration(jr.config.InquiryDigestAgeHours) * time.Hour
		digests, err := jr.inquiries.PendingByOwner(ctx, jr.now().Add(-age))
		if err != nil {
			return err
		}

		sent := 0
		for _, d := range digests {
			if d.OwnerEmail == "" || d.PendingCount == 0 {
				continue
			}
			if err := jr.email.SendPendingInquiryDigest(ctx, d.OwnerEmail, d.OwnerName, d.PendingCount); err != nil {
				logger.Error("Failed to send inquiry digest",
					"owner_id", d.OwnerID,
					"email", d.OwnerEmail,
					"error", err)
				continue
			}
			sent++
			logger.Debug("Sent inquiry digest", "owner_id", d.OwnerID, "pending", d.PendingCount)
		}

		logger.Info("Inquiry digests sent", "owners", len(digests), "sent", sent)
		return nil
	})
}
