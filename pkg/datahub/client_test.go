package datahub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmitAspect(t *testing.T) {
	var gotPath, gotAuth, gotProtocol string
	var gotBody map[string]proposal

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotProtocol = r.Header.Get("X-RestLi-Protocol-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", zap.NewNop())
	urn := DatasetURN(PlatformSnowflake, "analytics.public.events", "PROD")

	err := client.EmitAspect(context.Background(), EntityTypeDataset, urn,
		AspectDatasetProperties,
		DatasetProperties{CustomProperties: map[string]string{"retention_period_days": "30"}})
	require.NoError(t, err)

	assert.Equal(t, "/aspects?action=ingestProposal", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2.0.0", gotProtocol)

	p := gotBody["proposal"]
	assert.Equal(t, EntityTypeDataset, p.EntityType)
	assert.Equal(t, urn, p.EntityURN)
	assert.Equal(t, "UPSERT", p.ChangeType)
	assert.Equal(t, AspectDatasetProperties, p.AspectName)
	assert.Equal(t, "application/json", p.Aspect.ContentType)

	var props DatasetProperties
	require.NoError(t, json.Unmarshal([]byte(p.Aspect.Value), &props))
	assert.Equal(t, "30", props.CustomProperties["retention_period_days"])
}

func TestEmitAspectServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())
	err := client.EmitAspect(context.Background(), EntityTypeDataset, "urn:li:dataset:x",
		AspectDatasetProperties, DatasetProperties{})
	require.Error(t, err)

	var statusErr HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestGetAspect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "structuredPropertySettings", r.URL.Query().Get("aspect"))
		assert.Equal(t, "0", r.URL.Query().Get("version"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"version": 0,
			"aspect": {
				"com.linkedin.structured.StructuredPropertySettings": {
					"isHidden": false,
					"showInSearchFilters": true,
					"lastModified": {"time": 1700000000000, "actor": "urn:li:corpuser:datahub"}
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())

	var settings StructuredPropertySettings
	err := client.GetAspect(context.Background(),
		StructuredPropertyURN("io.acryl.dataManagement.retentionPeriodDays"),
		AspectStructuredPropertySettings, &settings)
	require.NoError(t, err)

	assert.True(t, settings.ShowInSearchFilters)
	assert.False(t, settings.IsHidden)
	assert.Equal(t, int64(1700000000000), settings.LastModified.Time)
}

func TestGetAspectAmbiguousEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"version": 0,
			"aspect": {
				"com.linkedin.structured.StructuredPropertySettings": {"showInSearchFilters": true},
				"com.linkedin.structured.StructuredPropertyDefinition": {"qualifiedName": "x"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())

	var settings StructuredPropertySettings
	err := client.GetAspect(context.Background(),
		StructuredPropertyURN("io.acryl.dataManagement.retentionPeriodDays"),
		AspectStructuredPropertySettings, &settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous aspect envelope")
}

func TestGetAspectNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())

	var settings StructuredPropertySettings
	err := client.GetAspect(context.Background(), "urn:li:structuredProperty:missing",
		AspectStructuredPropertySettings, &settings)
	assert.ErrorIs(t, err, ErrAspectNotFound)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://catalog.example.com/gms/", "token", nil)
	assert.Equal(t, "https://catalog.example.com/gms", client.gmsURL)
}
