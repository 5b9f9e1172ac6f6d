package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tpl "github.com/oksasatya/t2-user-service/pkg/mailer/templates"
)

// ErrBadJob marks a job that can never be sent; it must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Prepare decodes a queued job and renders its template, if any.
func Prepare(body []byte) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return job, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return job, fmt.Errorf("%w: either template or subject with text/html is required", ErrBadJob)
		}
		return job, nil
	}

	subject, text, html, err := tpl.Render(job.Template, job.Data)
	if err != nil {
		return job, fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	job.Subject, job.Text, job.HTML = subject, text, html
	return job, nil
}

// Handle prepares and sends one queued job. Errors wrapping ErrBadJob are
// permanent; any other error comes from the sender and may be retried.
func Handle(ctx context.Context, s Sender, body []byte) error {
	job, err := Prepare(body)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}
