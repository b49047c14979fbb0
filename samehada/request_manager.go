package samehada

import (
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
)

// JoinSpec describes one named join of a batch
type JoinSpec struct {
	Name        string
	Left        table.Relation
	Right       table.Relation
	LeftColumn  string
	RightColumn string
}

type joinRequest struct {
	reqId uint64
	spec  *JoinSpec
}

/**
 * RequestManager executes queued joins one by one in order.
 * each join gets a fresh SamehadaInstance, so a failure of one join
 * does not affect counters or scratch storage of others.
 */
type RequestManager struct {
	nextReqId    uint64
	execQue      []*joinRequest
	newInstance  func() (*SamehadaInstance, error)
	bufferFrames int
}

func NewRequestManager(newInstance func() (*SamehadaInstance, error)) *RequestManager {
	return &RequestManager{0, make([]*joinRequest, 0), newInstance, common.BufferPoolFrames}
}

func (reqManager *RequestManager) SetBufferFrames(frames int) {
	reqManager.bufferFrames = frames
}

// AppendRequest queues a join and returns its request id
func (reqManager *RequestManager) AppendRequest(spec *JoinSpec) uint64 {
	qr := &joinRequest{reqManager.nextReqId, spec}
	reqManager.nextReqId++
	reqManager.execQue = append(reqManager.execQue, qr)
	return qr.reqId
}

func (reqManager *RequestManager) QueuedNum() int {
	return len(reqManager.execQue)
}

// caller must check the queue is not empty
func (reqManager *RequestManager) RetrieveRequest() *joinRequest {
	retVal := reqManager.execQue[0]
	reqManager.execQue = reqManager.execQue[1:]
	return retVal
}

func (reqManager *RequestManager) execute(qr *joinRequest) *JoinResult {
	shi, err := reqManager.newInstance()
	if err != nil {
		common.ShPrintf(common.ERROR, "Error: could not prepare scratch storage for %s: %v\n", qr.spec.Name, err)
		return &JoinResult{Name: qr.spec.Name, Err: err}
	}
	defer shi.Finalize()

	smj := NewSortMergeJoin(shi, qr.spec.Left, qr.spec.Right, qr.spec.LeftColumn, qr.spec.RightColumn)
	smj.SetBufferFrames(reqManager.bufferFrames)
	result, err := smj.Execute()
	if err != nil {
		common.ShPrintf(common.ERROR, "Error: %s failed: %v\n", qr.spec.Name, err)
		return &JoinResult{Name: qr.spec.Name, Stats: shi.GetAccountant().Stats(), Err: err}
	}
	result.Name = qr.spec.Name
	return result
}

// ExecuteAll executes all queued joins. results are in queued order.
func (reqManager *RequestManager) ExecuteAll() []*JoinResult {
	ret := make([]*JoinResult, 0, len(reqManager.execQue))
	for reqManager.QueuedNum() > 0 {
		ret = append(ret, reqManager.execute(reqManager.RetrieveRequest()))
	}
	return ret
}

// RunBatch executes specs in order with instances made by newInstance
func RunBatch(specs []JoinSpec, newInstance func() (*SamehadaInstance, error)) []*JoinResult {
	reqManager := NewRequestManager(newInstance)
	for ii := range specs {
		reqManager.AppendRequest(&specs[ii])
	}
	return reqManager.ExecuteAll()
}
