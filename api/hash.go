package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/digest"
)

func init() {
	addAPICall("curlHash", curlHash)
}

func curlHash(request Request, c *gin.Context, t time.Time) {
	if err := checkLimits(request); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	values, err := inputs(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}
	if len(values) == 0 {
		ReplyError("No trytes or trits provided", c)
		return
	}
	if maxBatch > 0 && len(values) > maxBatch {
		ReplyError("Too many inputs provided", c)
		return
	}

	params := hasher.Resolve(digest.Params{Rounds: request.Rounds, Length: request.Length, Mode: mode(request)})
	digests, err := hasher.HashBatch(c.Request.Context(), values, params)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	hashes := make([]string, len(digests))
	for i, d := range digests {
		hashes[i] = convert.TritsToTrytes(d)
	}

	c.JSON(http.StatusOK, gin.H{
		"hashes":   hashes,
		"rounds":   params.Rounds,
		"length":   params.Length,
		"duration": getDuration(t),
	})
}
