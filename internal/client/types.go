package client

import (
	"net/http"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"fastpath/pkg/matcher"
)

type SeedSet struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SeedSetSpec   `json:"spec,omitempty"`
	Status SeedSetStatus `json:"status,omitempty"`
}

type SeedSetSpec struct {
	Entries  []matcher.Entry `json:"entries,omitempty"`
	Interval int             `json:"interval,omitempty"` // seconds
}

type SeedSetStatus struct {
	SpecHash           string             `json:"specHash,omitempty"`
	ObservedGeneration int64              `json:"observedGeneration,omitempty"`
	Conditions         []metav1.Condition `json:"conditions,omitempty"`
}

type ControllerResponse struct {
	SeedSet SeedSet `json:"seedSet"`
}

type Fetcher struct {
	controllerURL   string
	fetchInterval   time.Duration
	verbose         bool
	operationalMode string
	updateChannel   chan<- []matcher.Entry
	httpClient      *http.Client
	lastGeneration  int64
}
