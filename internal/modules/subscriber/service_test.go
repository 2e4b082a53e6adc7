package subscriber

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type memStore struct {
	byID      map[string]*models.SubscriberModel
	nextID    int
	createErr error
}

func newMemStore() *memStore {
	return &memStore{byID: map[string]*models.SubscriberModel{}}
}

func (m *memStore) FindByEmail(email string) (*models.SubscriberModel, error) {
	for _, sub := range m.byID {
		if sub.Email == email {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByID(id string) (*models.SubscriberModel, error) {
	sub, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (m *memStore) Create(sub *models.SubscriberModel) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	sub.ID = fmt.Sprintf("sub-%d", m.nextID)
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *memStore) SetSubscribed(id string, subscribed bool, at time.Time) error {
	sub, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("no subscriber %s", id)
	}
	sub.Subscribed = subscribed
	if subscribed {
		sub.SubscribedAt = at
	}
	return nil
}

func (m *memStore) Delete(id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memStore) List(q pagination.Query) ([]models.SubscriberModel, response.Pagination, error) {
	var subs []models.SubscriberModel
	for _, sub := range m.byID {
		subs = append(subs, *sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Email < subs[j].Email })
	return subs, response.Pagination{Total: int64(len(subs))}, nil
}

func (m *memStore) SubscribedEmails() ([]string, error) {
	var emails []string
	for _, sub := range m.byID {
		if sub.Subscribed {
			emails = append(emails, sub.Email)
		}
	}
	sort.Strings(emails)
	return emails, nil
}

type recordingNotifier struct {
	welcomed []string
	fail     bool
}

func (r *recordingNotifier) SendWelcome(email string) error {
	if r.fail {
		return fmt.Errorf("smtp down")
	}
	r.welcomed = append(r.welcomed, email)
	return nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, zap.NewNop()), store
}

func TestSubscribeOutcomes(t *testing.T) {
	svc, store := newTestService()

	outcome, err := svc.Subscribe("Alice@Example.com ")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if outcome != OutcomeAdded {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeAdded)
	}

	sub, _ := store.FindByEmail("alice@example.com")
	if sub == nil {
		t.Fatal("expected normalized email to be stored")
	}
	if !sub.Subscribed {
		t.Fatal("new subscriber should be active")
	}

	// Subscribing twice never creates a second row.
	outcome, err = svc.Subscribe("alice@example.com")
	if err != nil {
		t.Fatalf("second subscribe: %v", err)
	}
	if outcome != OutcomeAlreadySubscribed {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeAlreadySubscribed)
	}
	if len(store.byID) != 1 {
		t.Fatalf("store has %d rows, want 1", len(store.byID))
	}
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc, store := newTestService()

	for _, email := range []string{"", "not-an-email", "a@b", "with space@x.com"} {
		outcome, err := svc.Subscribe(email)
		if err != nil {
			t.Fatalf("subscribe(%q): %v", email, err)
		}
		if outcome != OutcomeInvalid {
			t.Errorf("subscribe(%q) = %q, want %q", email, outcome, OutcomeInvalid)
		}
	}
	if len(store.byID) != 0 {
		t.Fatalf("invalid emails must not be stored, got %d rows", len(store.byID))
	}
}

func TestUnsubscribeThenResubscribeReactivates(t *testing.T) {
	svc, store := newTestService()

	if _, err := svc.Subscribe("bob@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	before, _ := store.FindByEmail("bob@example.com")

	outcome, err := svc.Unsubscribe("bob@example.com")
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if outcome != OutcomeUnsubscribed {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeUnsubscribed)
	}

	// Second unsubscribe is a no-op, reported distinctly.
	outcome, _ = svc.Unsubscribe("bob@example.com")
	if outcome != OutcomeAlreadyUnsubscribed {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeAlreadyUnsubscribed)
	}

	outcome, err = svc.Subscribe("bob@example.com")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if outcome != OutcomeReactivated {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeReactivated)
	}

	after, _ := store.FindByEmail("bob@example.com")
	if after.ID != before.ID {
		t.Fatalf("reactivation must reuse the row: %s != %s", after.ID, before.ID)
	}
	if !after.Subscribed {
		t.Fatal("reactivated subscriber should be active")
	}
}

func TestUnsubscribeUnknown(t *testing.T) {
	svc, _ := newTestService()

	outcome, err := svc.Unsubscribe("ghost@example.com")
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeNotFound)
	}
}

func TestWelcomeEmailBestEffort(t *testing.T) {
	svc, store := newTestService()
	notifier := &recordingNotifier{fail: true}
	svc.SetNotifier(notifier)

	outcome, err := svc.Subscribe("carol@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if outcome != OutcomeAdded {
		t.Fatalf("a failed welcome email must not fail the subscription, got %q", outcome)
	}
	if sub, _ := store.FindByEmail("carol@example.com"); sub == nil {
		t.Fatal("subscription should be persisted despite mail failure")
	}

	notifier.fail = false
	if _, err := svc.Subscribe("dave@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if len(notifier.welcomed) != 1 || notifier.welcomed[0] != "dave@example.com" {
		t.Fatalf("welcomed = %v, want [dave@example.com]", notifier.welcomed)
	}
}

func TestSubscribeInsertRace(t *testing.T) {
	svc, store := newTestService()

	// A concurrent subscribe wins the insert between lookup and create;
	// the unique-index violation reports as already subscribed.
	store.createErr = &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'race@example.com' for key 'idx_subscribers_email'"}

	outcome, err := svc.Subscribe("race@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if outcome != OutcomeAlreadySubscribed {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeAlreadySubscribed)
	}
}

func TestBulkImportPartition(t *testing.T) {
	svc, store := newTestService()

	// Pre-seed one active and one unsubscribed address.
	if _, err := svc.Subscribe("active@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Subscribe("lapsed@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Unsubscribe("lapsed@example.com"); err != nil {
		t.Fatal(err)
	}

	report, err := svc.BulkImport([]string{
		"New@Example.com",
		"active@example.com",
		"lapsed@example.com",
		"not-an-email",
		"new@example.com", // duplicate of the first entry
	})
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}

	if got, want := report.Added, []string{"new@example.com"}; !equal(got, want) {
		t.Errorf("added = %v, want %v", got, want)
	}
	if got, want := report.Reactivated, []string{"lapsed@example.com"}; !equal(got, want) {
		t.Errorf("reactivated = %v, want %v", got, want)
	}
	// The in-batch duplicate of new@example.com lands in no second bucket.
	if got, want := report.Existing, []string{"active@example.com"}; !equal(got, want) {
		t.Errorf("existing = %v, want %v", got, want)
	}
	if got, want := report.Invalid, []string{"not-an-email"}; !equal(got, want) {
		t.Errorf("invalid = %v, want %v", got, want)
	}

	if len(store.byID) != 3 {
		t.Fatalf("store has %d rows, want 3", len(store.byID))
	}
}

func TestToggleAndDelete(t *testing.T) {
	svc, store := newTestService()

	if _, err := svc.Subscribe("toggle@example.com"); err != nil {
		t.Fatal(err)
	}
	created, _ := store.FindByEmail("toggle@example.com")

	sub, err := svc.Toggle(created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if sub.Subscribed {
		t.Fatal("toggle should deactivate an active subscriber")
	}

	sub, err = svc.Toggle(created.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !sub.Subscribed {
		t.Fatal("toggle should reactivate an inactive subscriber")
	}

	if sub, err := svc.Toggle("missing-id"); err != nil || sub != nil {
		t.Fatalf("toggle(missing) = (%v, %v), want (nil, nil)", sub, err)
	}

	deleted, err := svc.Delete(created.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = svc.Delete(created.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestSubscribedEmailsSkipsInactive(t *testing.T) {
	svc, _ := newTestService()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.Subscribe(email); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Unsubscribe("b@example.com"); err != nil {
		t.Fatal(err)
	}

	emails, err := svc.SubscribedEmails()
	if err != nil {
		t.Fatalf("subscribed emails: %v", err)
	}
	if want := []string{"a@example.com", "c@example.com"}; !equal(emails, want) {
		t.Fatalf("emails = %v, want %v", emails, want)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
