package source

import (
	"context"
	"fmt"
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// ConfigMap loads documents from the keys of a Kubernetes ConfigMap in key
// order. Data and BinaryData keys are both read.
type ConfigMap struct {
	Client        kubernetes.Interface
	Namespace     string
	ConfigMapName string
}

// Name implements Source.
func (c *ConfigMap) Name() string {
	return fmt.Sprintf("configmap %s/%s", c.Namespace, c.ConfigMapName)
}

// Load implements Source.
func (c *ConfigMap) Load(ctx context.Context) ([]Document, error) {
	cm, err := c.Client.CoreV1().ConfigMaps(c.Namespace).Get(ctx, c.ConfigMapName, metav1.GetOptions{})
	if err != nil {
		return nil, err
	}

	data := make(map[string][]byte, len(cm.Data)+len(cm.BinaryData))
	for key, value := range cm.Data {
		data[key] = []byte(value)
	}
	for key, value := range cm.BinaryData {
		data[key] = value
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("configmap %s/%s has no keys", c.Namespace, c.ConfigMapName)
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([]Document, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, Document{Name: c.ConfigMapName + "/" + key, Data: data[key]})
	}
	return docs, nil
}

// NewKubernetesClient builds a client from an explicit kubeconfig path, or
// from the default loading rules when the path is empty.
func NewKubernetesClient(kubeconfig string) (kubernetes.Interface, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}
