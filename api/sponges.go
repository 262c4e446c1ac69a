package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
)

func init() {
	addAPICall("createSponge", createSponge)
	addAPICall("absorb", absorb)
	addAPICall("squeeze", squeeze)
	addAPICall("resetSponge", resetSponge)
	addAPICall("transformSponge", transformSponge)
	addAPICall("cloneSponge", cloneSponge)
	addAPICall("removeSponge", removeSponge)
	addAPICall("getSponges", getSponges)
}

func createSponge(request Request, c *gin.Context, t time.Time) {
	if err := checkLimits(request); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	defaults := hasher.Defaults()
	rounds := request.Rounds
	if rounds == 0 {
		rounds = defaults.Rounds
	}

	id, err := sponges.Create(rounds, defaults.Mode|mode(request))
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  id,
		"rounds":   rounds,
		"duration": getDuration(t),
	})
}

func absorb(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	values, err := inputs(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}
	if len(values) == 0 {
		// absorbing nothing still transforms once
		values = []crypt.Trits{nil}
	}

	if err := sponges.Absorb(id, values...); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": getDuration(t),
	})
}

func squeeze(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}
	if err := checkLimits(request); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	length := request.Length
	if length == 0 {
		length = hasher.Defaults().Length
	}

	trits, err := sponges.Squeeze(id, length)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trytes":   convert.TritsToTrytes(trits),
		"trits":    convert.TritsToInts(trits),
		"duration": getDuration(t),
	})
}

func resetSponge(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	if err := sponges.Reset(id); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": getDuration(t),
	})
}

func transformSponge(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	if err := sponges.Transform(id); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": getDuration(t),
	})
}

func cloneSponge(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	clone, err := sponges.Clone(id)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  clone,
		"duration": getDuration(t),
	})
}

func removeSponge(request Request, c *gin.Context, t time.Time) {
	id, err := session(request)
	if err != nil {
		ReplyError(err.Error(), c)
		return
	}

	if err := sponges.Remove(id); err != nil {
		ReplyError(err.Error(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration": getDuration(t),
	})
}

func getSponges(request Request, c *gin.Context, t time.Time) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": sponges.IDs(),
		"duration": getDuration(t),
	})
}
