package observer

import (
	"context"
	"errors"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/events"
)

func TestMultiOrder(t *testing.T) {
	var got []string
	rec := func(tag string) Observer {
		return Funcs{
			Selected:  func(id string) { got = append(got, tag+":sel:"+id) },
			Committed: func(id string, _ core.AnswerSet, s core.Status) { got = append(got, tag+":com:"+id+":"+string(s)) },
			Cleared:   func(id string) { got = append(got, tag+":clr:"+id) },
		}
	}
	m := Multi{rec("a"), rec("b")}
	m.OnStateSelected("CA")
	m.OnAnswersCommitted("CA", core.AnswerSet{}, core.StatusGreen)
	m.OnStateCleared("CA")

	want := []string{"a:sel:CA", "b:sel:CA", "a:com:CA:green", "b:com:CA:green", "a:clr:CA", "b:clr:CA"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFuncsNil(t *testing.T) {
	var f Funcs
	f.OnStateSelected("CA")
	f.OnAnswersCommitted("CA", core.AnswerSet{}, core.StatusGray)
	f.OnStateCleared("CA")
}

func TestStoreObserver(t *testing.T) {
	ctx := context.Background()
	s := answers.NewMemoryStore()
	o := NewStoreObserver(s, "ns")

	o.OnAnswersCommitted("TX", core.AnswerSet{Economic: core.Yes}, core.StatusRed)
	got, err := s.Get(ctx, "ns", "TX")
	if err != nil {
		t.Fatalf("Get after commit: %v", err)
	}
	if got.Economic != core.Yes {
		t.Errorf("Economic = %q, want %q", got.Economic, core.Yes)
	}

	o.OnStateCleared("TX")
	if _, err := s.Get(ctx, "ns", "TX"); !errors.Is(err, answers.ErrNotFound) {
		t.Errorf("Get after clear = %v, want ErrNotFound", err)
	}
}

type fakePublisher struct {
	events []events.AnswerEvent
	err    error
}

func (f *fakePublisher) Publish(ev events.AnswerEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

func TestEventObserver(t *testing.T) {
	pub := &fakePublisher{}
	o := &EventObserver{Publisher: pub, Namespace: "web"}

	set := core.AnswerSet{Economic: core.No}
	o.OnStateSelected("NY")
	o.OnAnswersCommitted("NY", set, core.StatusGreen)
	set.Economic = core.Yes
	o.OnStateCleared("NY")

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	first := pub.events[0]
	if first.Kind != events.Committed || first.Namespace != "web" || first.StateID != "NY" {
		t.Errorf("first event = %+v", first)
	}
	if first.Answers == nil || first.Answers.Economic != core.No {
		t.Errorf("committed answers = %+v, want economic no", first.Answers)
	}
	if pub.events[1].Kind != events.Cleared || pub.events[1].Answers != nil {
		t.Errorf("second event = %+v, want cleared without answers", pub.events[1])
	}
}

func TestEventObserverPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("down")}
	o := &EventObserver{Publisher: pub}
	o.OnStateCleared("NY")
	if len(pub.events) != 1 {
		t.Errorf("published %d events, want 1", len(pub.events))
	}
}
