package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/domain/entity"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
	"github.com/oksasatya/t2-user-service/pkg/mailer"
	tpl "github.com/oksasatya/t2-user-service/pkg/mailer/templates"
)

// Notifier enqueues transactional emails. Publish failures are logged and
// never returned to the caller.
type Notifier struct {
	Pub    EmailPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub EmailPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: helpers.OrNop(logger)}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.Pub != nil && n.Cfg != nil && n.Cfg.MailSendEnabled
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	if err := n.Pub.PublishJSON(ctx, job); err != nil {
		n.Logger.WithError(err).WithField("template", job.Template).Warn("failed to publish email job")
	}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if !n.enabled() {
		return
	}
	data := tpl.NewWelcomeData(n.Cfg, u.Name, u.Email, tpl.WithTime(time.Now()))
	n.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: data})
}

func (n *Notifier) ProfileUpdated(ctx context.Context, u *entity.User, changes map[string]string) {
	if !n.enabled() || len(changes) == 0 {
		return
	}
	data := tpl.NewProfileUpdatedData(n.Cfg, u.Name, u.Email, changes, tpl.WithTime(time.Now()))
	n.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.ProfileUpdated, Data: data})
}

func (n *Notifier) ForgotPassword(ctx context.Context, u *entity.User, link string, ttl time.Duration) {
	if !n.enabled() {
		return
	}
	data := tpl.NewForgotPasswordData(n.Cfg, u.Name, u.Email, link, ttl, tpl.WithTime(time.Now()))
	n.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.ForgotPassword, Data: data})
}
