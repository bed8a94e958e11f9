/*
Package server implements msgpack IPC for hidden sentence searches.

The server reads msgpack encoded requests from stdin and writes msgpack
encoded responses to stdout, one value after another with no framing: the
msgpack stream is self-delimiting. Requests are processed synchronously in
arrival order and every response carries the ID of its request.

# IPC

The first value the server writes is a readiness notice:

	{"status": "ready"}

A search request names the input and optionally a dictionary cutoff:

	{"id": "req_001", "i": "icamhappy", "n": 2000}

The server responds with accepted sentences ranked by score, lowest first:

	{"id": "req_001", "r": [{"s": "I am happy.", "c": 40}], "n": 1, "v": 3, "t": 1845}

"n" is the number of results, "v" the number of word sequences found before
the grammar filter, and "t" the processing time in microseconds.

Failed requests get an error instead:

	{"id": "req_001", "e": "input too long: 70 runes, limit is 40", "c": 400}

Each request is searched from scratch; the server does not remember what it
sent for earlier requests.
*/
package server

// SearchRequest asks for the sentences hidden in Input.
type SearchRequest struct {
	ID     string `msgpack:"id"`
	Input  string `msgpack:"i"`
	Cutoff int    `msgpack:"n,omitempty"`
}

// SentenceResult is one ranked sentence.
type SentenceResult struct {
	Sentence string `msgpack:"s"`
	Score    int    `msgpack:"c"`
}

// SearchResponse answers a SearchRequest.
type SearchResponse struct {
	ID         string           `msgpack:"id"`
	Results    []SentenceResult `msgpack:"r"`
	Count      int              `msgpack:"n"`
	Candidates int              `msgpack:"v"`
	TimeTaken  int64            `msgpack:"t"`
	Partial    bool             `msgpack:"p,omitempty"`
}

// SearchError holds basic error information for failed requests.
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// StatusMessage is sent once the server is ready for requests.
type StatusMessage struct {
	Status string `msgpack:"status"`
}
