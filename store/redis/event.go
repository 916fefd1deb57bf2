package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
	"github.com/xraph/agenda/internal/storeerr"
)

// eventModel is the JSON representation stored in Redis.
type eventModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	People      int       `json:"people"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEventModel(evt *event.Event) *eventModel {
	return &eventModel{
		ID:          evt.ID.String(),
		Name:        evt.Name,
		Date:        evt.Date.String(),
		Location:    evt.Location,
		Description: evt.Description,
		People:      evt.People,
		CreatedAt:   evt.CreatedAt,
		UpdatedAt:   evt.UpdatedAt,
	}
}

func fromEventModel(m *eventModel) (*event.Event, error) {
	evtID, err := id.ParseEventID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse event ID %q: %w", m.ID, err)
	}
	var date event.Date
	if err := date.UnmarshalText([]byte(m.Date)); err != nil {
		return nil, fmt.Errorf("parse event %s date: %w", m.ID, err)
	}
	return &event.Event{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          evtID,
		Name:        m.Name,
		Date:        date,
		Location:    m.Location,
		Description: m.Description,
		People:      m.People,
	}, nil
}

// maxTxAttempts bounds optimistic retries when a watched key changes.
const maxTxAttempts = 5

func (s *Store) CreateEvent(ctx context.Context, evt *event.Event) error {
	m := toEventModel(evt)
	raw, err := encode(m)
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, entityKey(prefixEvent, m.ID), raw, 0)
		pipe.ZAdd(ctx, zEventAll, goredis.Z{Score: scoreFromTime(m.CreatedAt), Member: m.ID})
		return nil
	})
	return storeerr.Wrap(backend, "create event", err)
}

// ReplaceEvent keeps the stored CreatedAt and rewrites every other field.
// The key is watched, so a delete racing the read aborts the write.
func (s *Store) ReplaceEvent(ctx context.Context, evt *event.Event) error {
	key := entityKey(prefixEvent, evt.ID.String())

	var written *eventModel
	replace := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		var existing eventModel
		if err := json.Unmarshal(raw, &existing); err != nil {
			return fmt.Errorf("agenda/redis: decode event: %w", err)
		}

		m := toEventModel(evt)
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = now()
		out, err := encode(m)
		if err != nil {
			return err
		}
		if _, err := tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		}); err != nil {
			return err
		}
		written = m
		return nil
	}

	var err error
	for range maxTxAttempts {
		err = s.rdb.Watch(ctx, replace, key)
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
	}
	switch {
	case isRedisNil(err):
		return agenda.ErrEventNotFound
	case err != nil:
		return storeerr.Wrap(backend, "replace event", err)
	}

	stored, err := fromEventModel(written)
	if err != nil {
		return err
	}
	*evt = *stored
	return nil
}

// DeleteEvent drops the record and its index entry in one transaction.
func (s *Store) DeleteEvent(ctx context.Context, evtID id.ID) error {
	var del *goredis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRem(ctx, zEventAll, evtID.String())
		del = pipe.Del(ctx, entityKey(prefixEvent, evtID.String()))
		return nil
	})
	if err != nil {
		return storeerr.Wrap(backend, "delete event", err)
	}
	if del.Val() == 0 {
		return agenda.ErrEventNotFound
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, evtID id.ID) (*event.Event, error) {
	raw, err := s.rdb.Get(ctx, entityKey(prefixEvent, evtID.String())).Bytes()
	if err != nil {
		if isRedisNil(err) {
			return nil, agenda.ErrEventNotFound
		}
		return nil, storeerr.Wrap(backend, "get event", err)
	}
	return decodeEvent(raw)
}

func (s *Store) ListEvents(ctx context.Context) ([]*event.Event, error) {
	ids, err := s.rdb.ZRange(ctx, zEventAll, 0, -1).Result()
	if err != nil {
		return nil, storeerr.Wrap(backend, "list events", err)
	}
	if len(ids) == 0 {
		return []*event.Event{}, nil
	}

	keys := make([]string, len(ids))
	for i, evtID := range ids {
		keys[i] = entityKey(prefixEvent, evtID)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeerr.Wrap(backend, "list events get", err)
	}

	result := make([]*event.Event, 0, len(values))
	for _, v := range values {
		// Deleted between ZRANGE and MGET.
		raw, ok := v.(string)
		if !ok {
			continue
		}
		evt, err := decodeEvent([]byte(raw))
		if err != nil {
			return nil, err
		}
		result = append(result, evt)
	}
	return result, nil
}

func decodeEvent(raw []byte) (*event.Event, error) {
	var m eventModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("agenda/redis: decode event: %w", err)
	}
	return fromEventModel(&m)
}
