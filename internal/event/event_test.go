package event

import (
	"reflect"
	"testing"
)

func TestPublish_DeliversInOrder(t *testing.T) {
	d := New()
	var got []string

	d.Subscribe(TypeSaved, func(Event) { got = append(got, "first") })
	d.Subscribe(TypeSaved, func(Event) { got = append(got, "second") })
	d.Subscribe(TypeSelected, func(Event) { got = append(got, "wrong type") })

	d.Publish(Saved{ID: 7})

	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPublish_PayloadReachesHandler(t *testing.T) {
	d := New()
	var sel Selected

	d.Subscribe(TypeSelected, func(e Event) {
		sel = e.(Selected)
	})
	d.Publish(Selected{ID: 3, Title: "t", Content: "c", Tags: "x"})

	if sel.ID != 3 || sel.Title != "t" || sel.Content != "c" || sel.Tags != "x" {
		t.Errorf("unexpected payload %+v", sel)
	}
}

func TestPublish_NestedIsSynchronous(t *testing.T) {
	d := New()
	var order []string

	d.Subscribe(TypeSelected, func(Event) {
		order = append(order, "selected")
		d.Publish(Saved{})
		order = append(order, "selected-done")
	})
	d.Subscribe(TypeSaved, func(Event) { order = append(order, "saved") })

	d.Publish(Selected{})

	want := []string{"selected", "saved", "selected-done"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("got %v, want %v", order, want)
	}
}

func TestClose_StopsDelivery(t *testing.T) {
	d := New()
	calls := 0
	d.Subscribe(TypeSaved, func(Event) { calls++ })

	d.Close()
	d.Publish(Saved{})
	d.Subscribe(TypeSaved, func(Event) { calls++ })
	d.Publish(Saved{})

	if calls != 0 {
		t.Errorf("expected no calls after Close, got %d", calls)
	}
}

func TestPublish_NilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Publish(Saved{}) // must not panic
}
