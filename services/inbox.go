package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/database"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
)

// Inbox lists messages newest first with their read state from before the
// inbox was opened. MarkedRead counts the messages this visit flipped to read.
type Inbox struct {
	Messages   []*models.Message `json:"messages"`
	MarkedRead int64             `json:"markedRead"`
}

// Inbox hides messages sent by administrators, such as another admin's notes
func (v *adminView) Inbox(ctx context.Context) (*Inbox, error) {
	return v.openInbox(database.InboxFilter{RecipientID: v.user.ID, ExcludeAdminSenders: true})
}

func (v *studentView) Inbox(ctx context.Context) (*Inbox, error) {
	return v.openInbox(database.InboxFilter{RecipientID: v.user.ID})
}

func (b *base) openInbox(f database.InboxFilter) (*Inbox, error) {
	messages, err := b.db.MessageRepo().List(f, 0)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "messages", err)
	}

	unread := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		if !m.Read {
			unread = append(unread, m.ID)
		}
	}
	marked, err := b.db.MessageRepo().MarkRead(f, unread)
	if err != nil {
		return nil, errs.NewDatabaseError("update", "messages", err)
	}
	return &Inbox{Messages: messages, MarkedRead: marked}, nil
}
