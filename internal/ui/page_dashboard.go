package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// DashboardPage shows the sanctuary-wide totals. When the live feed is
// enabled a small script keeps the numbers current over a websocket.
func DashboardPage(pc PageContext, stats domain.Statistics, liveFeed bool) Node {
	cards := []Node{
		statCard("Animals", stats.TotalAnimals, "/animals", "total-animals"),
		statCard("Habitats", stats.TotalHabitats, "/habitats", "total-habitats"),
	}
	if pc.Session != nil && pc.Session.Role == domain.RoleManager {
		cards = append(cards, statCard("Caretakers", stats.TotalCaretakers, "/caretakers", "total-caretakers"))
	}

	body := []Node{
		Div(Class("d-flex flex-wrap gap-3"), Group(cards)),
	}
	if liveFeed {
		body = append(body, Script(Raw(liveStatsScript)))
	}

	return appPage("Dashboard", "dashboard", pc, body...)
}

func statCard(label string, value int, href, id string) Node {
	return A(
		Href(href),
		Class(cardClass("stat-card")),
		P(Class(mutedClass()+" mb-1"), Text(label)),
		Strong(Class("f1"), ID(id), Text(strconv.Itoa(value))),
	)
}

const liveStatsScript = `(function(){
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws/statistics');
  ws.onmessage = function(ev){
    try {
      var s = JSON.parse(ev.data);
      var set = function(id, v){ var el = document.getElementById(id); if (el && typeof v === 'number') { el.textContent = v; } };
      set('total-animals', s.totalAnimals);
      set('total-habitats', s.totalHabitats);
      set('total-caretakers', s.totalCaretakers);
    } catch (e) {}
  };
})();`
