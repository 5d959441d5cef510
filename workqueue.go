package main

import (
	"github.com/joshvictor1024/mandelkernel/pkg/types"
)

// 1 ctrl 1 send 1 recv
// at most one request waits; a newer one replaces it
type frameQueue struct {
	cq *types.ControlledQueue[*frameRequest]
}

func newFrameQueue() *frameQueue {
	return &frameQueue{
		cq: types.NewControlledQueue[*frameRequest](),
	}
}

func (fq *frameQueue) close() {
	fq.cq.Close()
}

// replace the pending request if there is one
// return false to signal close (like with channels)
func (fq *frameQueue) send(fr *frameRequest) bool {
	data := fq.cq.Lock()
	if len(data) > 0 {
		old := data[len(data)-1]
		data[len(data)-1] = fr
		fq.cq.Unlock()
		old.cancel()
		return true
	}
	fq.cq.Unlock()
	return fq.cq.Send(fr)
}

func (fq *frameQueue) recv() (*frameRequest, bool) {
	return fq.cq.Recv()
}

// 1 ctrl 1 send 1 recv
type drawQueue struct {
	cq *types.ControlledQueue[*frameBuffer]
}

func newDrawQueue() *drawQueue {
	return &drawQueue{
		cq: types.NewControlledQueue[*frameBuffer](),
	}
}

// call from control
// only call once
func (dq *drawQueue) close() {
	dq.cq.Close()
}

// return true on send
// return false if closed and not send
func (dq *drawQueue) send(fb *frameBuffer) bool {
	return dq.cq.Send(fb)
}

func (dq *drawQueue) attemptRecv(blockOnEmpty bool) (bool, *frameBuffer, bool) {
	return dq.cq.AttemptRecv(blockOnEmpty)
}

// pool of frame buffers shared by the render worker and draw
type frameBufferQueue struct {
	cq *types.ControlledQueue[*frameBuffer]
}

func newFrameBufferQueue(buffers []*frameBuffer) *frameBufferQueue {
	return &frameBufferQueue{
		cq: types.NewControlledQueueOf(buffers),
	}
}

// call from control
// only call once
func (fbq *frameBufferQueue) close() {
	fbq.cq.Close()
}

func (fbq *frameBufferQueue) send(fb *frameBuffer) bool {
	return fbq.cq.Send(fb)
}

func (fbq *frameBufferQueue) recv() (*frameBuffer, bool) {
	return fbq.cq.Recv()
}
