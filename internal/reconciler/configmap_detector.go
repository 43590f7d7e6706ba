package reconciler

import (
	"context"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	toolscache "k8s.io/client-go/tools/cache"

	"realmform/pkg/logging"
)

// ConfigMapDetector implements ChangeDetector for a ConfigMap source using a
// client-go informer scoped to one ConfigMap.
type ConfigMapDetector struct {
	mu sync.Mutex

	client    kubernetes.Interface
	namespace string
	name      string
	interval  time.Duration

	debounce *debouncer
	stopCh   chan struct{}
	running  bool
}

// NewConfigMapDetector creates a detector for namespace/name.
func NewConfigMapDetector(client kubernetes.Interface, namespace, name string, debounceInterval time.Duration) *ConfigMapDetector {
	return &ConfigMapDetector{
		client:    client,
		namespace: namespace,
		name:      name,
		interval:  debounceInterval,
	}
}

// Start begins watching the ConfigMap. It returns once the informer cache
// has synced; objects present at that point do not produce events.
func (d *ConfigMapDetector) Start(ctx context.Context, changes chan<- ChangeEvent) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = true
	d.stopCh = make(chan struct{})
	d.debounce = newDebouncer("ConfigMapDetector", d.interval, changes)
	stopCh := d.stopCh
	d.mu.Unlock()

	factory := informers.NewSharedInformerFactoryWithOptions(d.client, 0,
		informers.WithNamespace(d.namespace),
		informers.WithTweakListOptions(func(o *metav1.ListOptions) {
			o.FieldSelector = fields.OneTermEqualSelector("metadata.name", d.name).String()
		}),
	)
	informer := factory.Core().V1().ConfigMaps().Informer()

	_, err := informer.AddEventHandler(toolscache.ResourceEventHandlerDetailedFuncs{
		AddFunc: func(obj interface{}, isInInitialList bool) {
			if !isInInitialList {
				d.handle(obj, OperationCreate)
			}
		},
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldCM, ok1 := oldObj.(*corev1.ConfigMap)
			newCM, ok2 := newObj.(*corev1.ConfigMap)
			if ok1 && ok2 && oldCM.ResourceVersion != "" && oldCM.ResourceVersion == newCM.ResourceVersion {
				return
			}
			d.handle(newObj, OperationUpdate)
		},
		DeleteFunc: func(obj interface{}) {
			if tombstone, ok := obj.(toolscache.DeletedFinalStateUnknown); ok {
				obj = tombstone.Obj
			}
			d.handle(obj, OperationDelete)
		},
	})
	if err != nil {
		d.Stop()
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			d.Stop()
		case <-stopCh:
		}
	}()

	factory.Start(stopCh)
	factory.WaitForCacheSync(stopCh)

	logging.Info("ConfigMapDetector", "Started watching configmap %s/%s", d.namespace, d.name)
	return nil
}

func (d *ConfigMapDetector) handle(obj interface{}, operation ChangeOperation) {
	cm, ok := obj.(*corev1.ConfigMap)
	if !ok || cm.Namespace != d.namespace || cm.Name != d.name {
		return
	}

	d.mu.Lock()
	running, debounce := d.running, d.debounce
	d.mu.Unlock()
	if !running {
		return
	}
	debounce.push(ChangeEvent{
		Operation: operation,
		Timestamp: time.Now(),
		Source:    SourceKubernetes,
		Name:      cm.Namespace + "/" + cm.Name,
	})
}

// Stop stops the informer.
func (d *ConfigMapDetector) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}
	d.running = false
	d.debounce.stop()
	close(d.stopCh)

	logging.Info("ConfigMapDetector", "Stopped configmap detector")
	return nil
}

// GetSource returns the change source type.
func (d *ConfigMapDetector) GetSource() ChangeSource {
	return SourceKubernetes
}
