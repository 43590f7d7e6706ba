package reconciler

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestConfigMapDetector_EmitsOnUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "iam", Name: "realms"},
		Data:       map[string]string{"test.yaml": "realm: test"},
	}
	client := fake.NewSimpleClientset(cm)
	detector := NewConfigMapDetector(client, "iam", "realms", 10*time.Millisecond)
	events := make(chan ChangeEvent, 10)
	require.NoError(t, detector.Start(ctx, events))
	defer detector.Stop()

	// The initial list does not produce an event.
	select {
	case event := <-events:
		t.Fatalf("unexpected event for initial list: %+v", event)
	case <-time.After(100 * time.Millisecond):
	}

	// The fake watch may start after the first update, so keep updating
	// until an event arrives.
	var received ChangeEvent
	i := 0
	assert.Eventually(t, func() bool {
		i++
		updated := cm.DeepCopy()
		updated.Data["test.yaml"] = "realm: test" + strconv.Itoa(i)
		if _, err := client.CoreV1().ConfigMaps("iam").Update(ctx, updated, metav1.UpdateOptions{}); err != nil {
			return false
		}
		select {
		case received = <-events:
			return true
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)

	assert.Equal(t, SourceKubernetes, received.Source)
	assert.Equal(t, "iam/realms", received.Name)
	assert.Equal(t, OperationUpdate, received.Operation)
}

func TestConfigMapDetector_IgnoresOtherConfigMaps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := fake.NewSimpleClientset()
	detector := NewConfigMapDetector(client, "iam", "realms", 10*time.Millisecond)
	events := make(chan ChangeEvent, 10)
	require.NoError(t, detector.Start(ctx, events))
	defer detector.Stop()

	detector.handle(&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "iam", Name: "other"}}, OperationCreate)
	detector.handle(&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "iam", Name: "realms"}}, OperationCreate)

	select {
	case event := <-events:
		assert.Equal(t, "iam/realms", event.Name)
		assert.Equal(t, OperationCreate, event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}
}

func TestConfigMapDetector_StopIsIdempotent(t *testing.T) {
	detector := NewConfigMapDetector(fake.NewSimpleClientset(), "iam", "realms", 0)
	require.NoError(t, detector.Start(context.Background(), make(chan ChangeEvent, 1)))

	assert.NoError(t, detector.Stop())
	assert.NoError(t, detector.Stop())
	assert.Equal(t, SourceKubernetes, detector.GetSource())
}
