package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"git-commander/internal/crawler"
	"git-commander/pkg/response"
)

// crawlerStats returns the crawler state.
// @Summary Crawler statistics
// @Description Resources, consumers, seen-set and URL cache sizes, last cycle report
// @Tags Crawler
// @Produce json
// @Success 200 {object} response.Resp{data=crawler.Stats}
// @Router /api/v1/crawler/stats [get]
func (srv HTTPServer) crawlerStats(c *gin.Context) {
	response.OK(c, srv.crawler.Stats())
}

// crawlerRun runs one cycle now. It waits for a scheduled cycle in progress.
// @Summary Run a polling cycle
// @Description Fetch every feed once and dispatch new events
// @Tags Crawler
// @Produce json
// @Success 200 {object} response.Resp{data=crawler.CycleReport}
// @Failure 500 {object} response.Resp
// @Router /api/v1/crawler/run [post]
func (srv HTTPServer) crawlerRun(c *gin.Context) {
	ctx := c.Request.Context()
	srv.l.Infof(ctx, "Manual polling cycle requested from %s", c.ClientIP())

	// A client hanging up must not abort a cycle half way through dispatch.
	report, err := srv.runCycle(context.WithoutCancel(ctx))
	if err != nil {
		srv.l.Errorf(ctx, "Manual polling cycle failed: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

func (srv HTTPServer) runCycle(ctx context.Context) (report crawler.CycleReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("polling cycle panicked: %v", r)
		}
	}()
	return srv.crawler.RunCycle(ctx), nil
}
