package serializer

// HEAD responses: this package has no notion of request method, so it
// can't suppress a body on its own. Drive StartEmpty for a HEAD
// response exactly as you would for one with truly no body (a 204, a
// redirect) — render Content-Length into the header image as if the
// body were being sent, then call StartEmpty instead of StartBuffers/
// StartSource/StartStream. That reproduces a HEAD response byte for
// byte without this module needing to know what HEAD is.
