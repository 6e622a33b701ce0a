package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketTestTakers = "test_takers"
	bucketIDCards    = "id_cards"
	bucketQuestions  = "questions"
	bucketResults    = "results"
)

// Store реализация storage.Gateway во встроенной базе bbolt.
// Записи хранятся как JSON под последовательными ключами, поэтому обход
// возвращает их в порядке добавления.
type Store struct {
	db *bolt.DB
}

var _ storage.Gateway = (*Store)(nil)

// New открывает файл базы и создаёт недостающие бакеты.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open database in %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketTestTakers, bucketIDCards, bucketQuestions, bucketResults} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return errors.Wrapf(err, "could not create bucket %s", name)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// put сохраняет значение под следующим ключом последовательности бакета.
func put(b *bolt.Bucket, v interface{}) ([]byte, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return nil, errors.Wrap(err, "could not allocate key")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal object to json: %#+v", v)
	}
	key := itob(seq)
	if err := b.Put(key, data); err != nil {
		return nil, errors.Wrap(err, "could not store record")
	}
	return key, nil
}

func list[T any](db *bolt.DB, bucket string, keep func(T) bool) ([]T, error) {
	var items []T
	err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return errors.Wrapf(err, "cannot decode record in bucket %s", bucket)
			}
			if keep == nil || keep(item) {
				items = append(items, item)
			}
			return nil
		})
	})
	return items, err
}

// findKey ищет ключ записи по её идентификатору.
func findKey[T any](b *bolt.Bucket, id string, idOf func(T) string) ([]byte, *T, error) {
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return nil, nil, errors.Wrap(err, "cannot decode record")
		}
		if idOf(item) == id {
			return append([]byte(nil), k...), &item, nil
		}
	}
	return nil, nil, nil
}

func (s *Store) ListTestTakers(_ context.Context) ([]model.TestTaker, error) {
	return list[model.TestTaker](s.db, bucketTestTakers, nil)
}

// CreateTestTaker проверяет уникальность ID-карты через индексный бакет в той же транзакции.
func (s *Store) CreateTestTaker(_ context.Context, t model.TestTaker) (model.TestTaker, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		idCards := tx.Bucket([]byte(bucketIDCards))
		if idCards.Get([]byte(t.IDCardNumber)) != nil {
			return model.ErrDuplicate
		}
		key, err := put(tx.Bucket([]byte(bucketTestTakers)), t)
		if err != nil {
			return err
		}
		return idCards.Put([]byte(t.IDCardNumber), key)
	})
	if err != nil {
		return model.TestTaker{}, err
	}
	return t, nil
}

func (s *Store) DeleteTestTaker(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTestTakers))
		key, t, err := findKey(b, id, func(t model.TestTaker) string { return t.ID })
		if err != nil {
			return err
		}
		if key == nil {
			return model.ErrNotFound
		}
		if err := tx.Bucket([]byte(bucketIDCards)).Delete([]byte(t.IDCardNumber)); err != nil {
			return errors.Wrap(err, "could not delete id card index")
		}
		return b.Delete(key)
	})
}

func (s *Store) FindTestTakerByIDCard(_ context.Context, idCard string) (*model.TestTaker, error) {
	var found *model.TestTaker
	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(bucketIDCards)).Get([]byte(idCard))
		if key == nil {
			return nil
		}
		v := tx.Bucket([]byte(bucketTestTakers)).Get(key)
		if v == nil {
			return nil
		}
		var t model.TestTaker
		if err := json.Unmarshal(v, &t); err != nil {
			return errors.Wrap(err, "cannot decode test taker")
		}
		found = &t
		return nil
	})
	return found, err
}

func (s *Store) ListQuestions(_ context.Context, variant string) ([]model.Question, error) {
	variant = storage.Variant(variant)
	return list(s.db, bucketQuestions, func(q model.Question) bool {
		return storage.Variant(q.Variant) == variant
	})
}

func (s *Store) CreateQuestion(_ context.Context, q model.Question) (model.Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Variant = storage.Variant(q.Variant)
	err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := put(tx.Bucket([]byte(bucketQuestions)), q)
		return err
	})
	if err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketQuestions))
		key, _, err := findKey(b, id, func(q model.Question) string { return q.ID })
		if err != nil {
			return err
		}
		if key == nil {
			return model.ErrNotFound
		}
		return b.Delete(key)
	})
}

func (s *Store) AppendResult(_ context.Context, r model.Result) (model.Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := put(tx.Bucket([]byte(bucketResults)), r)
		return err
	})
	if err != nil {
		return model.Result{}, errors.Wrap(err, "could not store result")
	}
	return r, nil
}

func (s *Store) ListResults(_ context.Context) ([]model.Result, error) {
	return list[model.Result](s.db, bucketResults, nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}
