package store

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"horasextras/database"
	"horasextras/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	return db
}

type testEnv struct {
	db            *gorm.DB
	users         *UserStore
	projects      *ProjectStore
	notifications *NotificationStore
	requests      *RequestStore
	mailer        *captureMailer

	gestor      *models.User
	encarregado *models.User
	tecnico     *models.User
}

// captureMailer records deliveries instead of talking to SMTP.
type captureMailer struct {
	sent []string
}

func (m *captureMailer) Send(to, subject, body string) {
	m.sent = append(m.sent, to+"|"+subject)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:            db,
		users:         NewUserStore(db),
		projects:      NewProjectStore(db),
		notifications: NewNotificationStore(db),
		mailer:        &captureMailer{},
	}
	env.requests = NewRequestStore(db, env.users, env.projects, env.notifications, env.mailer)

	var err error
	env.gestor, err = env.users.Authenticate("gestor@fortesengenharia.com", "gestor123")
	require.NoError(t, err)
	env.encarregado, err = env.users.Authenticate("encarregado@fortesengenharia.com", "enc123")
	require.NoError(t, err)
	env.tecnico, err = env.users.Authenticate("tecnico@fortesengenharia.com", "tec123")
	require.NoError(t, err)
	return env
}
