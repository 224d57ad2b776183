package answers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// ValkeyStore keeps each namespace in one hash, field per state id.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore connects to a Valkey (Redis-compatible) server.
func NewValkeyStore(addr string) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &ValkeyStore{client: client, prefix: "nexus:answers:"}, nil
}

func (v *ValkeyStore) key(namespace string) string { return v.prefix + namespace }

func (v *ValkeyStore) Load(ctx context.Context, namespace string) (core.AnswerBook, error) {
	cmd := v.client.Do(ctx, v.client.B().Hgetall().Key(v.key(namespace)).Build())
	fields, err := cmd.AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("hgetall: %w", err)
	}
	book := make(core.AnswerBook, len(fields))
	for id, raw := range fields {
		var set core.AnswerSet
		if err := json.Unmarshal([]byte(raw), &set); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		book[id] = set
	}
	return book, nil
}

func (v *ValkeyStore) Get(ctx context.Context, namespace, id string) (core.AnswerSet, error) {
	cmd := v.client.Do(ctx, v.client.B().Hget().Key(v.key(namespace)).Field(id).Build())
	raw, err := cmd.ToString()
	if valkey.IsValkeyNil(err) {
		return core.AnswerSet{}, ErrNotFound
	}
	if err != nil {
		return core.AnswerSet{}, fmt.Errorf("hget: %w", err)
	}
	var set core.AnswerSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return core.AnswerSet{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return set, nil
}

func (v *ValkeyStore) Save(ctx context.Context, namespace, id string, set core.AnswerSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	cmd := v.client.Do(ctx,
		v.client.B().Hset().Key(v.key(namespace)).FieldValue().FieldValue(id, string(data)).Build(),
	)
	return cmd.Error()
}

func (v *ValkeyStore) Delete(ctx context.Context, namespace, id string) error {
	cmd := v.client.Do(ctx, v.client.B().Hdel().Key(v.key(namespace)).Field(id).Build())
	return cmd.Error()
}

// Close releases the client.
func (v *ValkeyStore) Close() error {
	v.client.Close()
	return nil
}
