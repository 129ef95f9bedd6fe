package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"credkit/internal/roster/metrics"
	"credkit/internal/roster/models"
	"credkit/internal/storage"
	"credkit/internal/storage/mocks"
	dErrors "credkit/pkg/domain-errors"
	"credkit/pkg/pii"
	"credkit/pkg/platform/sentinel"
	"credkit/pkg/requestcontext"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	kv      *storage.InMemory
	metrics *metrics.Metrics
	service *Service
	ctx     context.Context
	key     string
	seq     int
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.kv = storage.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.seq = 0
	s.service = New(s.kv,
		WithMetrics(s.metrics),
		WithIDGenerator(func() string {
			s.seq++
			return fmt.Sprintf("client-%d", s.seq)
		}),
	)
	s.ctx = requestcontext.WithTime(context.Background(), fixedNow)
	s.key = storage.Key(storage.DefaultNamespace, storage.ClientsKey)
}

func validRequest() models.AddClientRequest {
	return models.AddClientRequest{
		FirstName: "  Ana ",
		LastName:  "Lopez",
		Email:     "ana@example.com",
		Phone:     "(555) 010-9999",
		DOB:       "1990-05-01",
		Last4SSN:  "12-34",
		Tags:      []string{"Referral", " Referral "},
		Stage:     models.StageActive,
	}
}

func (s *ServiceSuite) stored() []models.ClientRecord {
	clients, err := storage.LoadJSON[[]models.ClientRecord](s.ctx, s.kv, s.key)
	s.Require().NoError(err)
	return clients
}

func (s *ServiceSuite) TestRoster_Fallbacks() {
	s.Run("nothing persisted returns the seed set", func() {
		s.Equal(models.SeedClients(), s.service.Roster(s.ctx))
		s.Equal(1.0, promtest.ToFloat64(s.metrics.RosterFallbacks.WithLabelValues(metrics.FallbackMissing)))
	})

	s.Run("empty array returns the seed set", func() {
		s.Require().NoError(s.kv.Set(s.ctx, s.key, []byte("[]")))
		s.Len(s.service.Roster(s.ctx), 3)
	})

	s.Run("corrupt value returns the seed set", func() {
		s.Require().NoError(s.kv.Set(s.ctx, s.key, []byte("{not json")))
		s.Equal(models.SeedClients(), s.service.Roster(s.ctx))
		s.Equal(1.0, promtest.ToFloat64(s.metrics.RosterFallbacks.WithLabelValues(metrics.FallbackCorrupt)))
	})

	for _, raw := range []string{`{"a":1}`, `42`, `"x"`, `null`, `[1,2]`, `true`} {
		s.Run("non-array value "+raw+" returns the seed set", func() {
			s.Require().NoError(s.kv.Set(s.ctx, s.key, []byte(raw)))
			s.Equal(models.SeedClients(), s.service.Roster(s.ctx))
		})
	}

	s.Run("adding over a non-array value starts from the seed set", func() {
		s.Require().NoError(s.kv.Set(s.ctx, s.key, []byte(`{"clients":[]}`)))
		created, err := s.service.AddClient(s.ctx, validRequest())
		s.Require().NoError(err)

		stored := s.stored()
		s.Require().Len(stored, 4)
		s.Equal(created.ID, stored[0].ID)
	})

	s.Run("unavailable storage returns the seed set", func() {
		svc := New(storage.Unavailable{})
		s.Equal(models.SeedClients(), svc.Roster(s.ctx))
	})
}

func (s *ServiceSuite) TestRoster_RecomputesMasks() {
	stale := []models.ClientRecord{{
		ID:          "x",
		Name:        "Stale Mask",
		Email:       "stale@example.com",
		EmailMasked: "old-mask",
		Phone:       "5550001111",
		PhoneMasked: "old-mask",
		Stage:       "Prospect",
		Status:      models.StatusPending,
	}}
	s.Require().NoError(storage.SaveJSON(s.ctx, s.kv, s.key, stale))

	got := s.service.Roster(s.ctx)
	s.Require().Len(got, 1)
	want, _ := pii.MaskEmail("stale@example.com")
	s.Equal(want, got[0].EmailMasked)
	s.Equal("***-***-1111", got[0].PhoneMasked)
	s.NotNil(got[0].Tags)
}

func (s *ServiceSuite) TestAddClient_Validation() {
	cases := []struct {
		name    string
		mutate  func(r *models.AddClientRequest)
		field   string
		message string
	}{
		{"blank last name", func(r *models.AddClientRequest) { r.LastName = "   " }, "name", pii.MsgNameRequired},
		{"name checked before contact", func(r *models.AddClientRequest) { r.FirstName = ""; r.Email = ""; r.Phone = "" }, "name", pii.MsgNameRequired},
		{"no contact", func(r *models.AddClientRequest) { r.Email = ""; r.Phone = "call me" }, "contact", pii.MsgContactRequired},
		{"invalid email", func(r *models.AddClientRequest) { r.Email = "ana@example" }, "email", pii.MsgInvalidEmail},
		{"underage", func(r *models.AddClientRequest) { r.DOB = "2010-01-01" }, "dob", pii.MsgUnderage},
		{"short last4", func(r *models.AddClientRequest) { r.Last4SSN = "12a" }, "last4Ssn", pii.MsgInvalidLast4},
		{"unknown stage", func(r *models.AddClientRequest) { r.Stage = "archived" }, "stage", MsgInvalidStage},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := validRequest()
			tc.mutate(&req)

			rec, err := s.service.AddClient(s.ctx, req)
			s.Require().Error(err)
			s.Nil(rec)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
			s.Equal(tc.field, dErrors.FieldOf(err))
			s.Contains(err.Error(), tc.message)

			_, getErr := s.kv.Get(s.ctx, s.key)
			s.ErrorIs(getErr, sentinel.ErrNotFound, "rejected input must not touch storage")
		})
	}
	s.Equal(float64(len(cases)), promtest.ToFloat64(s.metrics.ClientRejections.WithLabelValues(metrics.ReasonValidation)))
}

func (s *ServiceSuite) TestAddClient_Success() {
	var received [][]models.ClientRecord
	unsubscribe := s.service.Subscribe(func(clients []models.ClientRecord) {
		received = append(received, clients)
	})
	defer unsubscribe()

	rec, err := s.service.AddClient(s.ctx, validRequest())
	s.Require().NoError(err)

	s.Equal("client-1", rec.ID)
	s.Equal("Ana Lopez", rec.Name)
	s.Equal("5550109999", rec.Phone)
	s.Equal("***-***-9999", rec.PhoneMasked)
	s.Equal("1234", rec.Last4SSN)
	s.Equal("***-1234", rec.Last4SSNMasked)
	s.Equal("Active Client", rec.Stage)
	s.Equal(models.StatusActive, rec.Status)
	s.Equal([]string{"New Client", "Referral"}, rec.Tags)
	s.Equal("2025-03-10", rec.JoinDate)
	s.Equal(models.LastActivityJustNow, rec.LastActivity)

	stored := s.stored()
	s.Require().Len(stored, 4, "new record is prepended to the seed set")
	s.Equal(rec.ID, stored[0].ID)
	s.Equal("1", stored[1].ID)

	s.Require().Len(received, 1)
	s.Equal(stored[0].ID, received[0][0].ID)
	s.Len(received[0], 4)

	s.Equal(1.0, promtest.ToFloat64(s.metrics.ClientsCreated))
}

func (s *ServiceSuite) TestAddClient_StageDefaults() {
	req := validRequest()
	req.Stage = ""
	req.Tags = nil

	rec, err := s.service.AddClient(s.ctx, req)
	s.Require().NoError(err)
	s.Equal("Prospect", rec.Stage)
	s.Equal(models.StatusPending, rec.Status)
	s.Equal([]string{"Prospect"}, rec.Tags)
}

func (s *ServiceSuite) TestAddClient_Duplicates() {
	s.Run("email matches case-insensitively", func() {
		req := validRequest()
		req.Email = "  SARAH.J@Email.com "
		req.Phone = ""

		_, err := s.service.AddClient(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("email", dErrors.FieldOf(err))
		s.Contains(err.Error(), MsgDuplicateEmail)
	})

	s.Run("phone matches after sanitizing", func() {
		req := validRequest()
		req.Email = ""
		req.Phone = "1-555-0124"

		_, err := s.service.AddClient(s.ctx, req)
		s.Require().Error(err)
		s.Equal("phone", dErrors.FieldOf(err))
		s.Contains(err.Error(), MsgDuplicatePhone)
	})

	s.Run("email reported before phone", func() {
		req := validRequest()
		req.Email = "jen.davis@email.com"
		req.Phone = "15550123"

		_, err := s.service.AddClient(s.ctx, req)
		s.Require().Error(err)
		s.Equal("email", dErrors.FieldOf(err))
	})

	s.Run("second add of the same contact is rejected", func() {
		_, err := s.service.AddClient(s.ctx, validRequest())
		s.Require().NoError(err)

		_, err = s.service.AddClient(s.ctx, validRequest())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Len(s.stored(), 4)
	})

	s.Equal(4.0, promtest.ToFloat64(s.metrics.ClientRejections.WithLabelValues(metrics.ReasonDuplicate)))
}

func (s *ServiceSuite) TestAddClient_CorruptRosterIsReplaced() {
	s.Require().NoError(s.kv.Set(s.ctx, s.key, []byte(`{"broken":`)))

	_, err := s.service.AddClient(s.ctx, validRequest())
	s.Require().NoError(err)
	s.Len(s.stored(), 4)
}

func (s *ServiceSuite) TestAddClient_ListenerPanicDoesNotFailWrite() {
	var calls int
	s.service.Subscribe(func([]models.ClientRecord) { panic("render failed") })
	s.service.Subscribe(func([]models.ClientRecord) { calls++ })

	_, err := s.service.AddClient(s.ctx, validRequest())
	s.Require().NoError(err)
	s.Equal(1, calls)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ListenerPanics))
}

func (s *ServiceSuite) TestAddClient_ConcurrentWritesAreNotLost() {
	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	svc := New(s.kv)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := validRequest()
			req.Email = fmt.Sprintf("writer%d@example.com", i)
			req.Phone = ""
			_, err := svc.AddClient(s.ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}
	s.Len(s.stored(), writers+3)
}

func TestAddClient_UnavailableStorage(t *testing.T) {
	ctx := requestcontext.WithTime(context.Background(), fixedNow)
	svc := New(storage.Unavailable{})

	var broadcasts int
	svc.Subscribe(func([]models.ClientRecord) { broadcasts++ })

	t.Run("record is returned without persisting", func(t *testing.T) {
		rec, err := svc.AddClient(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "Ana Lopez", rec.Name)
		assert.Zero(t, broadcasts)
	})

	t.Run("seed contacts still count as duplicates", func(t *testing.T) {
		req := validRequest()
		req.Email = "m.brown@email.com"
		_, err := svc.AddClient(ctx, req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestAddClient_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKV(ctrl)
	ctx := requestcontext.WithTime(context.Background(), fixedNow)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := New(kv, WithMetrics(m))

	var broadcasts int
	svc.Subscribe(func([]models.ClientRecord) { broadcasts++ })

	kv.EXPECT().Get(gomock.Any(), "credkit:clients").Return(nil, sentinel.ErrNotFound)
	kv.EXPECT().Set(gomock.Any(), "credkit:clients", gomock.Any()).Return(errors.New("disk full"))

	rec, err := svc.AddClient(ctx, validRequest())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.Zero(t, broadcasts)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ClientRejections.WithLabelValues(metrics.ReasonStorage)))
}

func TestAddClient_PersistsJSONArray(t *testing.T) {
	kv := storage.NewInMemory()
	svc := New(kv, WithStorageKey("tenant:clients"))

	_, err := svc.AddClient(context.Background(), validRequest())
	require.NoError(t, err)

	raw, err := kv.Get(context.Background(), "tenant:clients")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "["))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded[0], "emailMasked")
}

func TestGenerateClientID(t *testing.T) {
	a, b := GenerateClientID(), GenerateClientID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^client-[0-9a-z]+-1741599000000$`, fallbackID(fixedNow))
}
