// Package whisper wraps the Hugging Face inference endpoint API used for
// speech-to-text.
//
// The wire format is the HF serverless inference contract: a JSON body with a
// base64 "inputs" field and an empty "parameters" object, authenticated with
// a bearer token, returning {"text": "..."} on success.
package whisper
