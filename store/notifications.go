package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"horasextras/models"
)

// NotificationStore owns the per-user notification feed.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(n *models.Notification) error {
	return errors.Wrap(s.db.Create(n).Error, "insert notification")
}

// ListFor returns the user's feed, newest first.
func (s *NotificationStore) ListFor(user *models.User, onlyUnread bool) ([]models.Notification, error) {
	q := s.db.Where("user_id = ?", user.ID)
	if onlyUnread {
		q = q.Where("read = ?", false)
	}
	var list []models.Notification
	if err := q.Order("id desc").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	return list, nil
}

// MarkRead is idempotent: re-reading an already read entry is a no-op. An id
// that does not exist (or belongs to someone else) is ErrNotFound.
func (s *NotificationStore) MarkRead(user *models.User, id uint) error {
	n, err := s.byID(user, id)
	if err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	return errors.Wrap(
		s.db.Model(n).Update("read", true).Error,
		"mark notification read",
	)
}

func (s *NotificationStore) MarkAllRead(user *models.User) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error
	return errors.Wrap(err, "mark all notifications read")
}

func (s *NotificationStore) Delete(user *models.User, id uint) error {
	n, err := s.byID(user, id)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Delete(n).Error, "delete notification")
}

func (s *NotificationStore) UnreadCount(user *models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count unread notifications")
	}
	return count, nil
}

func (s *NotificationStore) byID(user *models.User, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(models.ErrNotFound, "notification %d", id)
		}
		return nil, errors.Wrap(err, "load notification")
	}
	return &n, nil
}
