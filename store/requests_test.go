package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"horasextras/models"
	"horasextras/reports"
)

func day(d int) time.Time {
	return time.Date(2025, time.November, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_ValidationLeavesCollectionUntouched(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(12), 0, "fundação")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = env.requests.Create(env.encarregado, "Obra Centro Comercial", day(12), 8, "")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = env.requests.Create(env.encarregado, "Obra Inexistente", day(12), 8, "fundação")
	require.ErrorIs(t, err, models.ErrValidation)

	count, err := env.requests.Count(models.RequestFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCreate_TecnicoForbidden(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.requests.Create(env.tecnico, "Obra Centro Comercial", day(12), 8, "fundação")
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestCreate_NotifiesGestores(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(12), 10, "fundação")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, req.Status)
	require.NotZero(t, req.ID)

	feed, err := env.notifications.ListFor(env.gestor, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, models.KindWarning, feed[0].Kind)
	require.Equal(t, "Nova Solicitação Pendente", feed[0].Title)
	require.Contains(t, feed[0].Message, "João Santos")
	require.Contains(t, feed[0].Message, "Obra Centro Comercial")
	require.Equal(t, models.ScreenAprovacao, feed[0].ActionScreen)
	require.False(t, feed[0].Read)

	require.Len(t, env.mailer.sent, 1)
	require.Contains(t, env.mailer.sent[0], "gestor@fortesengenharia.com")
}

func TestList_FilterRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(10), 10, "fundação")
	require.NoError(t, err)
	second, err := env.requests.Create(env.encarregado, "Obra Shopping Norte", day(11), 6, "vistoria")
	require.NoError(t, err)
	third, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(12), 4, "acabamento")
	require.NoError(t, err)

	_, err = env.requests.Approve(env.gestor, second.ID)
	require.NoError(t, err)

	pending, err := env.requests.List(env.encarregado, models.RequestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Insertion order is preserved.
	require.Equal(t, first.ID, pending[0].ID)
	require.Equal(t, third.ID, pending[1].ID)

	// Repeated calls without mutation return identical results.
	again, err := env.requests.List(env.encarregado, models.RequestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Equal(t, pending, again)

	byProject, err := env.requests.List(env.gestor, models.RequestFilter{Project: "Obra Centro Comercial"})
	require.NoError(t, err)
	require.Len(t, byProject, 2)

	byDate, err := env.requests.List(env.gestor, models.RequestFilter{From: day(11), To: day(12)})
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	composed, err := env.requests.List(env.gestor, models.RequestFilter{
		Status:  models.StatusPending,
		Project: "Obra Centro Comercial",
		From:    day(11),
		To:      day(30),
	})
	require.NoError(t, err)
	require.Len(t, composed, 1)
	require.Equal(t, third.ID, composed[0].ID)
}

func TestList_EncarregadoSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(10), 8, "fundação")
	require.NoError(t, err)
	// Gestores may also file their own requests.
	_, err = env.requests.Create(env.gestor, "Obra Shopping Norte", day(10), 2, "inspeção noturna")
	require.NoError(t, err)

	own, err := env.requests.List(env.encarregado, models.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, env.encarregado.ID, own[0].RequesterID)

	all, err := env.requests.List(env.gestor, models.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	reporting, err := env.requests.List(env.tecnico, models.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, reporting, 2)
}

func TestApprove_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(12), 10, "fundação")
	require.NoError(t, err)

	pending, err := env.requests.List(env.gestor, models.RequestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := env.requests.Approve(env.gestor, req.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, approved.Status)

	pending, err = env.requests.List(env.gestor, models.RequestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Empty(t, pending)

	approvedList, err := env.requests.List(env.gestor, models.RequestFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approvedList, 1)

	all, err := env.requests.List(env.gestor, models.RequestFilter{})
	require.NoError(t, err)
	summaries := reports.Summarize(all)
	require.Len(t, summaries, 1)
	require.Equal(t, "Obra Centro Comercial", summaries[0].Project)
	require.Equal(t, 10, summaries[0].ApprovedHours)

	// The requester is told about the decision.
	feed, err := env.notifications.ListFor(env.encarregado, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, models.KindSuccess, feed[0].Kind)
	require.Equal(t, "Solicitação Aprovada", feed[0].Title)
}

func TestTransition_Exclusive(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.encarregado, "Obra Industrial Leste", day(8), 12, "montagem de estrutura")
	require.NoError(t, err)

	_, err = env.requests.Approve(env.gestor, req.ID)
	require.NoError(t, err)

	_, err = env.requests.Approve(env.gestor, req.ID)
	require.ErrorIs(t, err, models.ErrIllegalTransition)
	_, err = env.requests.Reject(env.gestor, req.ID, "mudou de ideia")
	require.ErrorIs(t, err, models.ErrIllegalTransition)

	got, err := env.requests.Get(env.gestor, req.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, got.Status)
	require.Empty(t, got.RejectionReason)
}

func TestTransition_ExclusiveUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	// A single connection serializes the driver while still interleaving the
	// load and the guarded UPDATE across goroutines, so losers that read the
	// row as pending fail on zero affected rows.
	sqlDB.SetMaxOpenConns(1)

	req, err := env.requests.Create(env.encarregado, "Obra Shopping Norte", day(9), 6, "descarga de material")
	require.NoError(t, err)

	const deciders = 8
	start := make(chan struct{})
	errs := make(chan error, deciders)
	var wg sync.WaitGroup
	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			var err error
			if i%2 == 0 {
				_, err = env.requests.Approve(env.gestor, req.ID)
			} else {
				_, err = env.requests.Reject(env.gestor, req.ID, "solicitação duplicada")
			}
			errs <- err
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, models.ErrIllegalTransition)
		losses++
	}
	require.Equal(t, 1, wins)
	require.Equal(t, deciders-1, losses)

	got, err := env.requests.Get(env.gestor, req.ID)
	require.NoError(t, err)
	require.Contains(t, []models.RequestStatus{models.StatusApproved, models.StatusRejected}, got.Status)

	// Only the winning decision reached the requester.
	feed, err := env.notifications.ListFor(env.encarregado, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
}

func TestReject_KeepsJustification(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.encarregado, "Obra Hospital Central", day(6), 4, "instalações elétricas urgentes")
	require.NoError(t, err)

	_, err = env.requests.Reject(env.gestor, req.ID, "")
	require.ErrorIs(t, err, models.ErrValidation)
	_, err = env.requests.Reject(env.gestor, req.ID, "   ")
	require.ErrorIs(t, err, models.ErrValidation)

	still, err := env.requests.Get(env.gestor, req.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, still.Status)

	rejected, err := env.requests.Reject(env.gestor, req.ID, "detalhamento insuficiente")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, rejected.Status)

	got, err := env.requests.Get(env.gestor, req.ID)
	require.NoError(t, err)
	require.Equal(t, "instalações elétricas urgentes", got.Justification)
	require.Equal(t, "detalhamento insuficiente", got.RejectionReason)

	feed, err := env.notifications.ListFor(env.encarregado, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, models.KindError, feed[0].Kind)
	require.Contains(t, feed[0].Message, "detalhamento insuficiente")
}

func TestTransition_RequiresGestor(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.encarregado, "Obra Residencial Sul", day(14), 8, "acabamento de fachada")
	require.NoError(t, err)

	_, err = env.requests.Approve(env.encarregado, req.ID)
	require.ErrorIs(t, err, models.ErrForbidden)
	_, err = env.requests.Reject(env.tecnico, req.ID, "sem autoridade")
	require.ErrorIs(t, err, models.ErrForbidden)

	got, err := env.requests.Get(env.gestor, req.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)
}

func TestTransition_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.requests.Approve(env.gestor, 9999)
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.requests.Reject(env.gestor, 9999, "não existe")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGet_ScopedForEncarregado(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.requests.Create(env.gestor, "Obra Shopping Norte", day(13), 6, "inspeção noturna")
	require.NoError(t, err)

	_, err = env.requests.Get(env.encarregado, req.ID)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestCountsAndSums(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.requests.Create(env.encarregado, "Obra Centro Comercial", day(10), 10, "fundação")
	require.NoError(t, err)
	_, err = env.requests.Create(env.encarregado, "Obra Shopping Norte", day(11), 6, "vistoria")
	require.NoError(t, err)
	b, err := env.requests.Create(env.encarregado, "Obra Residencial Sul", day(12), 3, "fachada")
	require.NoError(t, err)

	_, err = env.requests.Approve(env.gestor, a.ID)
	require.NoError(t, err)
	_, err = env.requests.Reject(env.gestor, b.ID, "sem necessidade")
	require.NoError(t, err)

	pending, err := env.requests.Count(models.RequestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.EqualValues(t, 1, pending)

	approvedHours, err := env.requests.SumHours(models.RequestFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	require.EqualValues(t, 10, approvedHours)

	// Rejected obras do not count as active.
	active, err := env.requests.ActiveProjects(models.RequestFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, active)
}
