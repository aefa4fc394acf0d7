package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
)

const (
	casesCollection    = "cases"
	messagesCollection = "messages"
)

type Firestore struct {
	client      *firestore.Client
	collections *collections
	caseRepo    *caseRepository
	messageRepo *messageRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces both collections, e.g. "test" gives
// "test_cases" and "test_messages".
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collections.prefix = prefix
	}
}

type collections struct {
	prefix string
}

func (c *collections) name(base string) string {
	if c.prefix != "" {
		return c.prefix + "_" + base
	}
	return base
}

func (c *collections) cases() string    { return c.name(casesCollection) }
func (c *collections) messages() string { return c.name(messagesCollection) }

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var (
		client *firestore.Client
		err    error
	)
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	cols := &collections{}
	f := &Firestore{
		client:      client,
		collections: cols,
		caseRepo:    &caseRepository{client: client, cols: cols},
		messageRepo: &messageRepository{client: client, cols: cols},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Case() interfaces.CaseRepository {
	return f.caseRepo
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.messageRepo
}

// Ping issues a single-document read to confirm the database is reachable.
func (f *Firestore) Ping(ctx context.Context) error {
	iter := f.client.Collection(f.collections.cases()).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.GetAll(); err != nil {
		return goerr.Wrap(err, "failed to ping firestore")
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
