package events

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	SubjectPostCreated      = "yatube.posts.created"
	SubjectPostDeleted      = "yatube.posts.deleted"
	SubjectPostLiked        = "yatube.posts.liked"
	SubjectPostUnliked      = "yatube.posts.unliked"
	SubjectAuthorFollowed   = "yatube.accounts.followed"
	SubjectAuthorUnfollowed = "yatube.accounts.unfollowed"
)

type Event struct {
	Subject   string    `json:"subject"`
	AccountID uint      `json:"account_id"`
	TargetID  uint      `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(event Event) error
}

// Nop drops every event, used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("yatube"))
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: conn}, nil
}

func (p *NatsPublisher) Publish(event Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	raw, err := Encode(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(event.Subject, raw)
}

func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when draining nats connection...")
	}
}

func Encode(event Event) ([]byte, error) {
	return jsoniter.Marshal(event)
}

func Decode(raw []byte) (Event, error) {
	var event Event
	err := jsoniter.Unmarshal(raw, &event)
	return event, err
}
