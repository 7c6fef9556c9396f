package command

import (
	"context"

	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/model"
)

// Game is the state store the commands drive. *service.Service satisfies it.
type Game interface {
	// Lifecycle
	CreateNewGame(ctx context.Context) (service.Result, error)
	CreateSampleGame(ctx context.Context) (service.Result, error)
	SaveGame(ctx context.Context) (service.Result, error)
	LoadGame(ctx context.Context) (service.Result, error)
	AdvanceGameWeek(ctx context.Context) (service.WeekAdvanced, error)
	GameState() model.GameState
	PlayerPromotion() (*model.Promotion, error)

	// Entities
	AllWrestlers() []*model.Wrestler
	WrestlerByID(id string) (*model.Wrestler, error)
	AddWrestler(ctx context.Context, raw []byte) (*model.Wrestler, error)
	UpdateWrestler(ctx context.Context, id string, patch model.WrestlerPatch) (*model.Wrestler, error)
	DeleteWrestler(ctx context.Context, id string) bool

	AllChampionships() []*model.Championship
	ChampionshipByID(id string) (*model.Championship, error)
	AddChampionship(ctx context.Context, raw []byte) (*model.Championship, error)
	UpdateChampionship(ctx context.Context, id string, patch model.ChampionshipPatch) (*model.Championship, error)
	DeleteChampionship(ctx context.Context, id string) bool

	AllEvents() []*model.Event
	EventByID(id string) (*model.Event, error)
	AddEvent(ctx context.Context, raw []byte) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) bool

	AllPromotions() []*model.Promotion
	PromotionByID(id string) (*model.Promotion, error)
	AddPromotion(ctx context.Context, raw []byte) (*model.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, patch model.PromotionPatch) (*model.Promotion, error)
	DeletePromotion(ctx context.Context, id string) (bool, error)

	// Settings
	Settings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
	ResetSettings(ctx context.Context) (*model.Settings, error)

	// Titles and events
	ChangeChampion(ctx context.Context, req service.TitleChangeRequest) (model.TitleChange, error)
	RecordDefense(ctx context.Context, req service.DefenseRequest) (*model.Defense, error)
	VacateTitle(ctx context.Context, req service.VacateRequest) (model.TitleVacated, error)
	AddMatch(ctx context.Context, eventID string, in model.MatchInput) (string, error)
	StartEvent(ctx context.Context, id string) (*model.Event, error)
	CancelEvent(ctx context.Context, id string) (*model.Event, error)
	FinalizeEvent(ctx context.Context, id string, results model.EventResults) (*model.Event, error)

	// Player promotion
	ProcessWeeklyFinances(ctx context.Context) (model.WeeklyFinances, error)
	RecordTransaction(ctx context.Context, in model.TransactionInput) (model.FinanceUpdate, error)
	AddMediaDeal(ctx context.Context, in model.MediaDeal) (model.MediaDealAdded, error)
	ScheduleShow(ctx context.Context, kind model.ShowKind, in model.ShowInput) (model.ShowScheduled, error)
	CancelShow(ctx context.Context, kind model.ShowKind, id string) (model.ShowCancelled, error)
	HireStaff(ctx context.Context, role model.StaffRole, in model.StaffMember) (model.StaffChange, error)
	FireStaff(ctx context.Context, role model.StaffRole, id string) (model.StaffChange, error)
	UpgradeFacility(ctx context.Context, kind model.FacilityKind, up model.FacilityUpgrade) (model.FacilityUpgraded, error)
	UpdateFanBase(ctx context.Context, u model.FanBaseUpdate) (model.FanBaseUpdated, error)
	RefreshFanSatisfaction(ctx context.Context) (int, error)
	ReconcilePlayerRoster(ctx context.Context) (model.RosterDrift, error)
}

var _ Game = (*service.Service)(nil)
