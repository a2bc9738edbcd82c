package memory

import (
	"testing"

	"github.com/code-payments/name-service/pkg/registry/data/registration/tests"
)

func TestRegistrationMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}

	tests.RunTests(t, testStore, teardown)
}
