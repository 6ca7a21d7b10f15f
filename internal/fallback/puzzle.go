package fallback

func init() {
	register(genre{
		kind:         Puzzle,
		palette:      puzzlePalette,
		singleAccent: true,
		background:   "linear-gradient(135deg, #2c3e50 0%, #4a235a 100%)",
		controls:     "Click two tiles to find matching pairs before time runs out.",
		startLabel:   "Start Puzzle",
		hud: []hudItem{
			{ID: "score", Label: "Score", Initial: "0"},
			{ID: "pairs", Label: "Pairs", Initial: "0/8"},
			{ID: "moves", Label: "Moves", Initial: "0"},
			{ID: "time", Label: "Time", Initial: "90"},
		},
		script: puzzleScript,
	})
}

const puzzleScript = `const SYMBOLS = ['circle', 'square', 'triangle', 'diamond', 'star', 'cross', 'ring', 'bar'];
const TILE_COLORS = ['#9B59B6', '#3498DB', '#E74C3C', '#F39C12', '#2ECC71', '#E67E22', '#1ABC9C', '#ECF0F1'];

const genre = {
  init: function () {
    const deck = [];
    for (let i = 0; i < SYMBOLS.length; i++) {
      deck.push(i, i);
    }
    for (let i = deck.length - 1; i > 0; i--) {
      const j = Math.floor(Math.random() * (i + 1));
      const t = deck[i];
      deck[i] = deck[j];
      deck[j] = t;
    }
    const size = 110;
    const gap = 14;
    const offsetX = (W - (size * 4 + gap * 3)) / 2;
    const offsetY = (H - (size * 4 + gap * 3)) / 2;
    const tiles = deck.map(function (symbol, i) {
      return {
        x: offsetX + (i % 4) * (size + gap),
        y: offsetY + Math.floor(i / 4) * (size + gap),
        width: size,
        height: size,
        symbol: symbol,
        open: false,
        matched: false
      };
    });
    return { tiles: tiles, selected: [], hideTimer: 0, pairs: 0, moves: 0, timeLeft: 90, score: 0 };
  },

  update: function (s, dt) {
    s.timeLeft = Math.max(0, s.timeLeft - dt);
    if (s.hideTimer > 0) {
      s.hideTimer -= dt;
      if (s.hideTimer <= 0) {
        s.selected.forEach(function (t) {
          t.open = false;
        });
        s.selected = [];
      }
    }
    if (s.pairs === SYMBOLS.length) {
      s.score += Math.floor(s.timeLeft) * 10;
      finish(s, true);
      return;
    }
    if (s.timeLeft <= 0) finish(s, false);
  },

  onClick: function (s, x, y) {
    if (s.hideTimer > 0) return;
    const point = { x: x, y: y, width: 1, height: 1 };
    const tile = s.tiles.find(function (t) {
      return isColliding(point, t);
    });
    if (!tile || tile.open || tile.matched) return;
    tile.open = true;
    s.selected.push(tile);
    if (s.selected.length < 2) return;

    s.moves++;
    const a = s.selected[0];
    const b = s.selected[1];
    if (a.symbol === b.symbol) {
      a.matched = true;
      b.matched = true;
      s.pairs++;
      s.score += Math.max(50, 200 - s.moves * 5);
      burst(b.x + b.width / 2, b.y + b.height / 2, PRIMARY, 24, 5);
      s.selected = [];
    } else {
      s.hideTimer = 0.8;
    }
  },

  render: function (g, s) {
    g.fillStyle = '#1b1b2f';
    g.fillRect(0, 0, W, H);
    s.tiles.forEach(function (t) {
      if (t.matched) {
        g.fillStyle = 'rgba(255, 255, 255, 0.08)';
      } else if (t.open) {
        g.fillStyle = '#2c2c54';
      } else {
        g.fillStyle = PRIMARY;
      }
      g.fillRect(t.x, t.y, t.width, t.height);
      g.strokeStyle = '#fff';
      g.lineWidth = 2;
      g.strokeRect(t.x, t.y, t.width, t.height);
      if (t.open || t.matched) drawSymbol(g, t);
    });
    g.fillStyle = '#fff';
    g.font = '14px Courier New';
    g.fillText('Time ' + Math.ceil(s.timeLeft) + 's', 12, 24);
  },

  hud: function (s) {
    setHud('score', s.score);
    setHud('pairs', s.pairs + '/' + SYMBOLS.length);
    setHud('moves', s.moves);
    setHud('time', Math.ceil(s.timeLeft));
  }
};

function drawSymbol(g, t) {
  const cx = t.x + t.width / 2;
  const cy = t.y + t.height / 2;
  const r = t.width * 0.3;
  g.fillStyle = TILE_COLORS[t.symbol];
  g.strokeStyle = TILE_COLORS[t.symbol];
  g.lineWidth = 8;
  g.beginPath();
  switch (SYMBOLS[t.symbol]) {
    case 'circle':
      g.arc(cx, cy, r, 0, Math.PI * 2);
      g.fill();
      break;
    case 'square':
      g.fillRect(cx - r, cy - r, r * 2, r * 2);
      break;
    case 'triangle':
      g.moveTo(cx, cy - r);
      g.lineTo(cx + r, cy + r);
      g.lineTo(cx - r, cy + r);
      g.closePath();
      g.fill();
      break;
    case 'diamond':
      g.moveTo(cx, cy - r);
      g.lineTo(cx + r, cy);
      g.lineTo(cx, cy + r);
      g.lineTo(cx - r, cy);
      g.closePath();
      g.fill();
      break;
    case 'star':
      for (let i = 0; i < 10; i++) {
        const rad = i % 2 === 0 ? r : r / 2;
        const a = -Math.PI / 2 + i * Math.PI / 5;
        g.lineTo(cx + Math.cos(a) * rad, cy + Math.sin(a) * rad);
      }
      g.closePath();
      g.fill();
      break;
    case 'cross':
      g.moveTo(cx - r, cy - r);
      g.lineTo(cx + r, cy + r);
      g.moveTo(cx + r, cy - r);
      g.lineTo(cx - r, cy + r);
      g.stroke();
      break;
    case 'ring':
      g.arc(cx, cy, r, 0, Math.PI * 2);
      g.stroke();
      break;
    default:
      g.fillRect(cx - r, cy - r / 3, r * 2, r / 1.5);
  }
}`
