// Package services contains the application services that implement the
// driving ports. Services orchestrate the driven ports (storage, extraction,
// embedding, vector index, language model) and hold the ingestion and
// retrieval business rules.
package services
