package docs

// docs.go is produced from the handler annotations. Run go generate in this
// directory after changing them; docs_test.go fails while the two disagree.
//go:generate swag init --dir ../ --generalInfo cmd/server/main.go --output . --outputTypes go --parseInternal
