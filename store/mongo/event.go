package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/storeerr"
)

// CreateEvent persists an event.
func (s *Store) CreateEvent(ctx context.Context, evt *event.Event) error {
	m := toEventModel(evt)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return storeerr.Wrap(backend, "create event", err)
	}

	return nil
}

// ReplaceEvent overwrites the user fields of an event in one atomic
// find-and-modify and reads the stored document back into evt.
func (s *Store) ReplaceEvent(ctx context.Context, evt *event.Event) error {
	update := bson.M{
		"$set": bson.M{
			"name":        evt.Name,
			"date":        evt.Date.String(),
			"location":    evt.Location,
			"description": evt.Description,
			"people":      evt.People,
			"updated_at":  now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m eventModel

	err := s.mdb.Collection(colEvents).
		FindOneAndUpdate(ctx, bson.M{"_id": evt.ID.String()}, update, opts).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return agenda.ErrEventNotFound
		}

		return storeerr.Wrap(backend, "replace event", err)
	}

	stored, err := fromEventModel(&m)
	if err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}

	*evt = *stored

	return nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(ctx context.Context, evtID id.ID) error {
	res, err := s.mdb.NewDelete((*eventModel)(nil)).
		Filter(bson.M{"_id": evtID.String()}).
		Exec(ctx)
	if err != nil {
		return storeerr.Wrap(backend, "delete event", err)
	}

	if res.DeletedCount() == 0 {
		return agenda.ErrEventNotFound
	}

	return nil
}

// GetEvent returns an event by ID.
func (s *Store) GetEvent(ctx context.Context, evtID id.ID) (*event.Event, error) {
	var m eventModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": evtID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, agenda.ErrEventNotFound
		}

		return nil, storeerr.Wrap(backend, "get event", err)
	}

	return fromEventModel(&m)
}

// ListEvents returns every event, oldest first.
func (s *Store) ListEvents(ctx context.Context) ([]*event.Event, error) {
	var models []eventModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, storeerr.Wrap(backend, "list events", err)
	}

	result := make([]*event.Event, 0, len(models))

	for i := range models {
		evt, err := fromEventModel(&models[i])
		if err != nil {
			return nil, err
		}

		result = append(result, evt)
	}

	return result, nil
}
